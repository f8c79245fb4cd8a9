package commitmsg

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/breml/commitlint/internal/conventional"
)

const shortHashLength = 7

// reporter prints per-message results and the final summary.
type reporter struct {
	out  io.Writer
	pass *color.Color
	fail *color.Color
	rule *color.Color
}

func newReporter(out io.Writer, noColor bool) *reporter {
	r := &reporter{
		out:  out,
		pass: color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
		rule: color.New(color.FgYellow),
	}

	if noColor {
		r.pass.DisableColor()
		r.fail.DisableColor()
		r.rule.DisableColor()
	}

	return r
}

func (r *reporter) result(c candidate, result conventional.Result) {
	label := getFirstLine(c.message)
	if c.hash != "" {
		label = shortHash(c.hash) + " " + label
	}

	if result.Valid {
		r.pass.Fprint(r.out, "✔")
		fmt.Fprintf(r.out, " %s\n", label)

		return
	}

	r.fail.Fprint(r.out, "✖")
	fmt.Fprintf(r.out, " %s\n", label)

	if c.ref != "" {
		fmt.Fprintf(r.out, "    in %s\n", c.ref)
	}

	for i, v := range result.Violations {
		fmt.Fprintf(r.out, "    %d. ", i+1)
		r.rule.Fprintf(r.out, "[%s]", v.Rule)
		fmt.Fprintf(r.out, " %s\n", v.Reason)
	}
}

func (r *reporter) summary(total int, failed int) {
	switch {
	case total == 0:
		fmt.Fprintln(r.out, "No commit messages to check.")

	case failed == 0:
		r.pass.Fprintf(r.out, "All %d commit messages are valid.\n", total)

	default:
		r.fail.Fprintf(r.out, "%d of %d commit messages have errors.\n", failed, total)
	}
}

func shortHash(hash string) string {
	if len(hash) > shortHashLength {
		return hash[:shortHashLength]
	}

	return hash
}

// getFirstLine extracts and returns the first non-empty line of a commit message.
func getFirstLine(message string) string {
	return conventional.Parse(message).Header
}
