package conventional

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultHeaderMaxLength is the maximum header length in characters.
	DefaultHeaderMaxLength = 100
	// DefaultBodyMaxLineLength is the maximum length of a body or footer line.
	DefaultBodyMaxLineLength = 100
)

// DefaultTypes returns the commit types accepted by default.
func DefaultTypes() []string {
	return []string{
		"build", "chore", "ci", "docs", "feat", "fix",
		"perf", "refactor", "revert", "style", "test",
	}
}

// Config controls which rules the validator enforces.
type Config struct {
	// Types is the set of accepted commit types. Matching is case-sensitive.
	Types []string `yaml:"types,omitempty"`

	// LowercaseDescription rejects descriptions starting with an uppercase letter.
	LowercaseDescription bool `yaml:"lowercase_description"`
	// NoTrailingPeriod rejects descriptions ending with a period.
	NoTrailingPeriod bool `yaml:"no_trailing_period"`

	// HeaderMaxLength limits the header length, 0 disables the check.
	HeaderMaxLength int `yaml:"header_max_length"`
	// BodyLeadingBlank requires a blank line between header and body.
	BodyLeadingBlank bool `yaml:"body_leading_blank"`
	// BodyMaxLineLength limits every line after the header, 0 disables the check.
	BodyMaxLineLength int `yaml:"body_max_line_length"`
}

// DefaultConfig returns the configuration used when nothing else is specified.
func DefaultConfig() Config {
	return Config{
		Types:                DefaultTypes(),
		LowercaseDescription: true,
		NoTrailingPeriod:     true,
		HeaderMaxLength:      DefaultHeaderMaxLength,
		BodyLeadingBlank:     true,
		BodyMaxLineLength:    DefaultBodyMaxLineLength,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if len(c.Types) == 0 {
		return errors.New("at least one commit type is required")
	}

	for i, t := range c.Types {
		if t == "" {
			return fmt.Errorf("types[%d]: type must not be empty", i)
		}

		if strings.ContainsAny(t, " \t():!") {
			return fmt.Errorf("types[%d]: invalid type %q", i, t)
		}
	}

	if c.HeaderMaxLength < 0 {
		return fmt.Errorf("header_max_length must not be negative, got %d", c.HeaderMaxLength)
	}

	if c.BodyMaxLineLength < 0 {
		return fmt.Errorf("body_max_line_length must not be negative, got %d", c.BodyMaxLineLength)
	}

	return nil
}
