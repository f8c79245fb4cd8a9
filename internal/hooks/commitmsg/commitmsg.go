package commitmsg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/breml/commitlint/internal/conventional"
)

// scissorsLine marks the start of the diff appended by "git commit --verbose".
const scissorsLine = "# ------------------------ >8 ------------------------"

var errHeadRefRequired = errors.New("--head-ref is required when using --base-ref")

// Options controls a single lint run.
type Options struct {
	// RepoPath is the repository root. Defaults to the current directory.
	RepoPath string
	// ConfigFile overrides the config file location.
	ConfigFile string

	// BaseRef and HeadRef select a commit range.
	BaseRef string
	HeadRef string
	// PrePush reads git pre-push hook input from Stdin.
	PrePush bool
	// MessageFile validates a single message file, as passed to a commit-msg hook.
	MessageFile string

	Stdin   io.Reader
	Stdout  io.Writer
	NoColor bool
	Logger  *zap.Logger
}

// Run validates the selected commit messages and prints a report to
// opts.Stdout. It returns a *ConfigError if no messages could be selected and
// a *ValidationError if at least one message is invalid.
func Run(opts Options) error {
	if opts.BaseRef != "" && opts.HeadRef == "" {
		return &ConfigError{Err: errHeadRefRequired}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}

	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	repoPath := opts.RepoPath
	if repoPath == "" {
		repoPath = "."
	}

	config, err := LoadConfig(repoPath, opts.ConfigFile)
	if err != nil {
		return configError("failed to load config: %w", err)
	}

	validator, err := conventional.New(config.Conventional)
	if err != nil {
		return &ConfigError{Err: err}
	}

	candidates, err := selectCandidates(config, repoPath, opts, logger)
	if err != nil {
		return err
	}

	l := &linter{
		config:    config,
		validator: validator,
		logger:    logger,
	}

	return l.lint(candidates, newReporter(opts.Stdout, opts.NoColor))
}

// selectCandidates dispatches on the input mode.
func selectCandidates(config *Config, repoPath string, opts Options, logger *zap.Logger) ([]candidate, error) {
	if opts.MessageFile != "" {
		logger.Debug("reading message file", zap.String("path", opts.MessageFile))

		message, err := readMessageFile(opts.MessageFile)
		if err != nil {
			return nil, &ConfigError{Err: err}
		}

		return []candidate{{ref: filepath.Base(opts.MessageFile), message: message}}, nil
	}

	repo, err := openRepository(repoPath)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	logger.Debug("opened repository", zap.String("path", repoPath))

	source := &commitSource{
		config: config,
		repo:   repo,
		logger: logger,
	}

	var candidates []candidate

	switch {
	case opts.HeadRef != "":
		candidates, err = source.fromArgs(opts.BaseRef, opts.HeadRef)

	case opts.PrePush:
		candidates, err = source.fromPrePush(opts.Stdin)

	default:
		var ok bool
		candidates, ok, err = source.fromEnv()
		if !ok {
			candidates, err = source.fromHead()
		}
	}

	if err != nil {
		return nil, configError("failed to select commits: %w", err)
	}

	return candidates, nil
}

// readMessageFile reads a commit message file and removes git comment lines
// and everything below the scissors line.
func readMessageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read message file: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == scissorsLine {
			break
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n"), nil
}

type linter struct {
	config    *Config
	validator *conventional.Validator
	logger    *zap.Logger
}

// lint validates every candidate, reports each result and returns a
// *ValidationError if any of them failed.
func (l *linter) lint(candidates []candidate, report *reporter) error {
	failed := 0

	for _, c := range candidates {
		result := l.validate(c.message)

		l.logger.Debug("validated commit message",
			zap.String("hash", c.hash),
			zap.Bool("valid", result.Valid),
			zap.Bool("breaking", result.Breaking),
			zap.Strings("reasons", result.Reasons()),
		)

		report.result(c, result)

		if !result.Valid {
			failed++
		}
	}

	report.summary(len(candidates), failed)

	if failed > 0 {
		return &ValidationError{Failed: failed, Total: len(candidates)}
	}

	return nil
}

// validate checks the conventional grammar and the custom rules.
func (l *linter) validate(message string) conventional.Result {
	result := l.validator.Validate(message)

	violations := EvaluateRules(l.config.Rules, conventional.Parse(message))
	if len(violations) > 0 {
		result.Violations = append(result.Violations, violations...)
		result.Valid = false
	}

	return result
}
