package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/breml/commitlint/internal/hooks/commitmsg"
)

type rootFlags struct {
	baseRef     string
	headRef     string
	prePush     bool
	messageFile string
	configFile  string
	noColor     bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "commitlint [repo-path]",
		Short: "Validate commit messages against Conventional Commits",
		Long: `Validate commit messages against the Conventional Commits grammar.

Without flags the commit range in $` + commitmsg.DefaultRangeEnv + ` is checked, or the
most recent commit if the variable is unset. The repository root defaults to
the current directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(args)

			logger, err := newLogger(flags.verbose)
			if err != nil {
				return &commitmsg.ConfigError{Err: err}
			}
			defer func() { _ = logger.Sync() }()

			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()
			opts.Logger = logger

			return commitmsg.Run(opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.baseRef, "base-ref", "", "Base ref or SHA to compare from (default: settings.main_ref)")
	f.StringVar(&flags.headRef, "head-ref", "", "Head ref or SHA to compare to")
	f.BoolVar(&flags.prePush, "pre-push", false, "Read git pre-push hook input from stdin")
	f.StringVar(&flags.messageFile, "message-file", "", "Validate a commit message file (commit-msg hook)")
	f.StringVarP(&flags.configFile, "config", "c", "", "Path to the config file (default: <repo-path>/"+commitmsg.DefaultConfigFile+")")
	f.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug information to stderr")

	return cmd
}

func (f rootFlags) options(args []string) commitmsg.Options {
	opts := commitmsg.Options{
		ConfigFile:  f.configFile,
		BaseRef:     f.baseRef,
		HeadRef:     f.headRef,
		PrePush:     f.prePush,
		MessageFile: f.messageFile,
		NoColor:     f.noColor,
	}

	if len(args) > 0 {
		opts.RepoPath = args[0]
	}

	return opts
}

// newLogger returns a no-op logger unless verbose output is requested.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.OutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.DisableStacktrace = true

	return config.Build()
}
