package conventional

import (
	"errors"
	"regexp"
	"strings"
)

const breakingChangeToken = "BREAKING CHANGE"

var (
	// ErrMissingSeparator is returned when a header has no ": " separator.
	ErrMissingSeparator = errors.New("missing type/description separator")
	// ErrMalformedScope is returned when the scope is empty, unbalanced or
	// contains characters other than letters, digits and hyphens.
	ErrMalformedScope = errors.New("malformed scope")

	scopePattern  = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	footerPattern = regexp.MustCompile(`^(BREAKING CHANGE|[A-Za-z0-9][A-Za-z0-9-]*)(: | #)(.*)$`)
)

// Header is the parsed first line of a commit message.
type Header struct {
	Type        string
	Scope       string
	HasScope    bool
	Breaking    bool
	Description string
}

// Footer is a single trailer in the last paragraph of a commit message.
type Footer struct {
	Token     string
	Separator string
	Value     string
}

// IsBreaking reports whether the footer announces a breaking change.
func (f Footer) IsBreaking() bool {
	return f.Token == breakingChangeToken || f.Token == "BREAKING-CHANGE"
}

// Message represents a commit message split into sections.
type Message struct {
	Raw     string
	Header  string
	Body    string
	Footer  string
	Footers []Footer
}

// Parse splits a commit message into header, body and footers.
//
// Parsing rules:
// - Line endings are normalized and surrounding whitespace is trimmed
// - Header: the first line
// - Sections after the header are separated by empty lines
// - Footer: the last section, if it starts with a "token: value" or
// "token #value" line and is not the only section after the header
// - Body: all remaining sections.
func Parse(message string) Message {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	message = strings.TrimSpace(message)

	result := Message{Raw: message}
	if message == "" {
		return result
	}

	header, rest, _ := strings.Cut(message, "\n")
	result.Header = strings.TrimSpace(header)

	sections := splitIntoSections(rest)
	if len(sections) == 0 {
		return result
	}

	last := sections[len(sections)-1]
	if footers, ok := parseFooters(last); ok {
		result.Footer = last
		result.Footers = footers
		sections = sections[:len(sections)-1]
	}

	result.Body = strings.Join(sections, "\n\n")

	return result
}

// ParseHeader parses a header line of the form "type(scope)!: description".
//
// Only the first ": " separates the type from the description. A header
// ending in ":" is treated as having an empty description. On
// ErrMalformedScope the returned header still carries the type, the breaking
// marker and the description.
func ParseHeader(line string) (Header, error) {
	line = strings.TrimSpace(line)

	idx := strings.Index(line, ": ")
	if idx < 0 {
		if !strings.HasSuffix(line, ":") {
			return Header{}, ErrMissingSeparator
		}

		idx = len(line) - 1
	}

	header := Header{
		Description: strings.TrimSpace(line[idx+1:]),
	}

	prefix := line[:idx]
	if strings.HasSuffix(prefix, "!") {
		header.Breaking = true
		prefix = strings.TrimSuffix(prefix, "!")
	}

	open := strings.IndexByte(prefix, '(')
	if open < 0 {
		if closing := strings.IndexByte(prefix, ')'); closing >= 0 {
			header.Type = prefix[:closing]
			return header, ErrMalformedScope
		}

		header.Type = prefix

		return header, nil
	}

	header.Type = prefix[:open]
	header.HasScope = true

	scope := prefix[open+1:]
	if !strings.HasSuffix(scope, ")") {
		return header, ErrMalformedScope
	}

	header.Scope = strings.TrimSuffix(scope, ")")
	if !scopePattern.MatchString(header.Scope) {
		return header, ErrMalformedScope
	}

	return header, nil
}

// parseFooters parses a footer section. Lines that are not footers continue
// the value of the preceding footer. It returns false if the section does
// not start with a footer.
func parseFooters(section string) ([]Footer, bool) {
	var footers []Footer

	for _, line := range strings.Split(section, "\n") {
		m := footerPattern.FindStringSubmatch(line)
		if m == nil {
			if len(footers) == 0 {
				return nil, false
			}

			footers[len(footers)-1].Value += "\n" + line

			continue
		}

		footers = append(footers, Footer{
			Token:     m[1],
			Separator: m[2],
			Value:     m[3],
		})
	}

	return footers, len(footers) > 0
}

// splitIntoSections splits a message by empty lines into sections.
func splitIntoSections(message string) []string {
	lines := strings.Split(message, "\n")

	var sections []string
	currentSection := make([]string, 0, len(lines))

	for _, line := range lines {
		if isEmptyLine(line) {
			// Empty line marks section boundary
			if len(currentSection) > 0 {
				sections = append(sections, strings.Join(currentSection, "\n"))
				currentSection = nil
			}

			continue
		}

		currentSection = append(currentSection, line)
	}

	if len(currentSection) > 0 {
		sections = append(sections, strings.Join(currentSection, "\n"))
	}

	return sections
}

func isEmptyLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
