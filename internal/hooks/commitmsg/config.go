package commitmsg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/breml/commitlint/internal/conventional"
)

const (
	// DefaultConfigFile is the name of the configuration file.
	DefaultConfigFile = ".commitlint.yml"
	// DefaultRangeEnv names the environment variable holding a commit range in CI.
	DefaultRangeEnv = "COMMITLINT_RANGE"

	defaultMainRef = "main"
)

// RuleType defines the type of rule enforcement.
type RuleType string

const (
	// RuleTypeDeny fails if the pattern matches.
	RuleTypeDeny RuleType = "deny"
	// RuleTypeRequire fails if the pattern does NOT match.
	RuleTypeRequire RuleType = "require"
)

// Scope defines where in the commit message to search.
type Scope string

const (
	// ScopeTitle searches only the first line (title).
	ScopeTitle Scope = "title"
	// ScopeBody searches the body (between title and footers).
	ScopeBody Scope = "body"
	// ScopeFooter searches the footer section.
	ScopeFooter Scope = "footer"
	// ScopeMessage searches the complete commit message.
	ScopeMessage Scope = "message"
)

// Config represents the complete configuration for commit message linting.
type Config struct {
	Conventional conventional.Config `yaml:"conventional"`
	Rules        []Rule              `yaml:"rules,omitempty"`
	Settings     Settings            `yaml:"settings,omitempty"`
}

// Rule is a custom pattern rule checked in addition to the conventional grammar.
type Rule struct {
	Name    string   `yaml:"name"`
	Type    RuleType `yaml:"type"`
	Scope   Scope    `yaml:"scope"`
	Pattern string   `yaml:"pattern"`
	Message string   `yaml:"message,omitempty"`

	// regex is the compiled regular expression (cached, not in YAML)
	regex *regexp.Regexp
}

// Settings contains global configuration options.
type Settings struct {
	MainRef          string   `yaml:"main_ref,omitempty"`
	RangeEnv         string   `yaml:"range_env,omitempty"`
	SkipMergeCommits bool     `yaml:"skip_merge_commits"`
	SkipAuthors      []string `yaml:"skip_authors,omitempty"`

	skipAuthors []*regexp.Regexp
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Conventional: conventional.DefaultConfig(),
		Settings: Settings{
			MainRef:          defaultMainRef,
			RangeEnv:         DefaultRangeEnv,
			SkipMergeCommits: true,
		},
	}
}

// LoadConfig loads and validates configuration. If configFile is empty,
// DefaultConfigFile in repoPath is used and a missing file yields the default
// configuration. An explicitly named config file must exist.
func LoadConfig(repoPath string, configFile string) (*Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = filepath.Join(repoPath, DefaultConfigFile)
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) && configFile == "" {
		config := DefaultConfig()
		return config, validateConfig(config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	// Fields absent from the YAML keep their defaults
	config := DefaultConfig()

	err := yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if config.Settings.MainRef == "" {
		config.Settings.MainRef = defaultMainRef
	}

	if config.Settings.RangeEnv == "" {
		config.Settings.RangeEnv = DefaultRangeEnv
	}

	err = validateConfig(config)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func validateConfig(config *Config) error {
	err := config.Conventional.Validate()
	if err != nil {
		return fmt.Errorf("conventional: %w", err)
	}

	for i := range config.Rules {
		rule := &config.Rules[i]

		if rule.Name == "" {
			return fmt.Errorf("rule %d: name is required", i)
		}

		if rule.Type != RuleTypeDeny && rule.Type != RuleTypeRequire {
			return fmt.Errorf("rule %q: type must be 'deny' or 'require', got %q", rule.Name, rule.Type)
		}

		if rule.Scope != ScopeTitle && rule.Scope != ScopeBody &&
			rule.Scope != ScopeFooter && rule.Scope != ScopeMessage {
			return fmt.Errorf(
				"rule %q: scope must be 'title', 'body', 'footer', or 'message', got %q",
				rule.Name,
				rule.Scope,
			)
		}

		if rule.Pattern == "" {
			return fmt.Errorf("rule %q: pattern is required", rule.Name)
		}

		re, compileErr := regexp.Compile(rule.Pattern)
		if compileErr != nil {
			return fmt.Errorf("rule %q: invalid regex pattern: %w", rule.Name, compileErr)
		}

		rule.regex = re
	}

	config.Settings.skipAuthors = make([]*regexp.Regexp, 0, len(config.Settings.SkipAuthors))
	for i, pattern := range config.Settings.SkipAuthors {
		re, compileErr := regexp.Compile(pattern)
		if compileErr != nil {
			return fmt.Errorf("skip_authors[%d]: invalid regex pattern %q: %w", i, pattern, compileErr)
		}

		config.Settings.skipAuthors = append(config.Settings.skipAuthors, re)
	}

	return nil
}
