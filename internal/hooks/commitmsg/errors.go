package commitmsg

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitInvalid     = 1
	ExitConfigError = 2
)

// ExitCoder is an error that carries a process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ConfigError reports a problem with the repository, the config file or the
// selection of commits. No commit messages are checked when it occurs.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// ExitCode implements ExitCoder.
func (e *ConfigError) ExitCode() int { return ExitConfigError }

func configError(format string, args ...any) error {
	return &ConfigError{Err: fmt.Errorf(format, args...)}
}

// ValidationError is returned after all messages were checked and at least
// one of them was invalid.
type ValidationError struct {
	Failed int
	Total  int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d of %d commit messages failed validation", e.Failed, e.Total)
}

// ExitCode implements ExitCoder.
func (e *ValidationError) ExitCode() int { return ExitInvalid }

// ExitCodeOf extracts an exit code from any error, defaulting to ExitInvalid.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}

	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	return ExitInvalid
}
