// Package conventional validates commit messages against the Conventional
// Commits grammar.
package conventional

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Names of the rules reported in violations.
const (
	RuleMessageEmpty        = "message-empty"
	RuleHeaderSeparator     = "header-separator"
	RuleTypeEnum            = "type-enum"
	RuleScopeFormat         = "scope-format"
	RuleDescriptionEmpty    = "description-empty"
	RuleDescriptionCase     = "description-case"
	RuleDescriptionFullStop = "description-full-stop"
	RuleHeaderMaxLength     = "header-max-length"
	RuleBodyLeadingBlank    = "body-leading-blank"
	RuleBodyMaxLineLength   = "body-max-line-length"
)

// Violation is a single rule a commit message failed.
type Violation struct {
	Rule   string
	Reason string
}

// Result is the outcome of validating one commit message.
type Result struct {
	Valid      bool
	Violations []Violation

	// Header is the parsed header. It is partially filled if the header is malformed.
	Header Header
	// Breaking is set by a "!" in the header or a BREAKING CHANGE footer.
	Breaking bool
}

// Reasons returns the human-readable violation reasons in order.
func (r Result) Reasons() []string {
	reasons := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		reasons = append(reasons, v.Reason)
	}

	return reasons
}

// Validator checks commit messages. It is immutable and safe for concurrent use.
type Validator struct {
	config Config
	types  map[string]struct{}
}

// New returns a validator for the given configuration.
func New(config Config) (*Validator, error) {
	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid conventional config: %w", err)
	}

	types := make(map[string]struct{}, len(config.Types))
	for _, t := range config.Types {
		types[t] = struct{}{}
	}

	config.Types = append([]string(nil), config.Types...)

	return &Validator{
		config: config,
		types:  types,
	}, nil
}

// Config returns a copy of the validator configuration.
func (v *Validator) Config() Config {
	config := v.config
	config.Types = append([]string(nil), v.config.Types...)

	return config
}

// Validate checks message and collects every violation found. It never fails;
// malformed input is reported as an invalid result.
func (v *Validator) Validate(message string) Result {
	msg := Parse(message)
	if msg.Raw == "" {
		return Result{
			Valid:      false,
			Violations: []Violation{{Rule: RuleMessageEmpty, Reason: "empty commit message"}},
		}
	}

	var result Result

	add := func(rule string, format string, args ...any) {
		result.Violations = append(result.Violations, Violation{
			Rule:   rule,
			Reason: fmt.Sprintf(format, args...),
		})
	}

	header, err := ParseHeader(msg.Header)
	result.Header = header

	if errors.Is(err, ErrMissingSeparator) {
		add(RuleHeaderSeparator, "missing type/description separator")
	} else {
		if _, ok := v.types[header.Type]; !ok {
			add(RuleTypeEnum, "unknown commit type: `%s`", header.Type)
		}

		if errors.Is(err, ErrMalformedScope) {
			add(RuleScopeFormat, "malformed scope")
		}

		v.checkDescription(header.Description, add)
	}

	if v.config.HeaderMaxLength > 0 {
		length := utf8.RuneCountInString(msg.Header)
		if length > v.config.HeaderMaxLength {
			add(RuleHeaderMaxLength, "header must not be longer than %d characters, current length is %d",
				v.config.HeaderMaxLength, length)
		}
	}

	v.checkBody(msg.Raw, add)

	result.Breaking = header.Breaking
	for _, f := range msg.Footers {
		if f.IsBreaking() {
			result.Breaking = true
		}
	}

	result.Valid = len(result.Violations) == 0

	return result
}

func (v *Validator) checkDescription(description string, add func(string, string, ...any)) {
	if description == "" {
		add(RuleDescriptionEmpty, "missing description")
		return
	}

	if v.config.LowercaseDescription {
		first, _ := utf8.DecodeRuneInString(description)
		if unicode.IsUpper(first) {
			add(RuleDescriptionCase, "description must not start with an uppercase letter")
		}
	}

	if v.config.NoTrailingPeriod && strings.HasSuffix(description, ".") {
		add(RuleDescriptionFullStop, "description must not end with a period")
	}
}

func (v *Validator) checkBody(raw string, add func(string, string, ...any)) {
	lines := strings.Split(raw, "\n")
	if len(lines) < 2 {
		return
	}

	if v.config.BodyLeadingBlank && !isEmptyLine(lines[1]) {
		add(RuleBodyLeadingBlank, "body must be separated from the header by a blank line")
	}

	if v.config.BodyMaxLineLength == 0 {
		return
	}

	for i, line := range lines[1:] {
		length := utf8.RuneCountInString(line)
		if length > v.config.BodyMaxLineLength {
			// Line numbers are 1-based and count the header.
			add(RuleBodyMaxLineLength, "body must not have lines longer than %d characters, line %d has %d",
				v.config.BodyMaxLineLength, i+2, length)

			return
		}
	}
}
