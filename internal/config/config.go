// Package config provides hierarchical configuration for reldocs using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.reldocs/config.yml or the --config file) > user config
// (~/.config/reldocs/config.yml) > defaults. Project files ending in .json are
// parsed as JSON, everything else as YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ndcmsl/workflows/internal/docindex"
	"github.com/ndcmsl/workflows/internal/generate"
	"github.com/ndcmsl/workflows/internal/inputs"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates nested keys: RELDOCS_OPENAI__MODEL sets openai.model.
const EnvPrefix = "RELDOCS_"

// Configuration represents the reldocs configuration
type Configuration struct {
	// ProjectName appears in the changelog title and the prompt.
	ProjectName string `koanf:"project_name" yaml:"project_name"`
	// Language is the language the generated document is written in.
	Language string `koanf:"language" yaml:"language"`

	DocsDir            string `koanf:"docs_dir" yaml:"docs_dir" validate:"required"`
	OutDir             string `koanf:"out_dir" yaml:"out_dir"`
	ChangelogFile      string `koanf:"changelog_file" yaml:"changelog_file" validate:"required"`
	IndexFile          string `koanf:"index_file" yaml:"index_file" validate:"required"`
	ContextFile        string `koanf:"context_file" yaml:"context_file"`
	ConventionsHeading string `koanf:"conventions_heading" yaml:"conventions_heading"`

	Limits inputs.Limits `koanf:"limits" yaml:"limits"`

	// Generator selects the text generator: "openai" or "agent".
	Generator string                `koanf:"generator" yaml:"generator" validate:"oneof=openai agent"`
	OpenAI    generate.OpenAIConfig `koanf:"openai" yaml:"openai"`
	Agent     generate.AgentConfig  `koanf:"agent" yaml:"agent"`

	// ExcludePaths are doublestar globs removed from the change set inputs.
	ExcludePaths []string `koanf:"exclude_paths" yaml:"exclude_paths"`

	StateDir          string `koanf:"state_dir" yaml:"state_dir"`
	MaxHistoryEntries int    `koanf:"max_history_entries" yaml:"max_history_entries" validate:"gte=0"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .reldocs/config.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/reldocs/config.yml when present
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := loadFile(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project config. An explicit path must exist.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s not found", customPath)
		}
		path = customPath
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadFile(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadFile loads a YAML or JSON config file, choosing the parser by extension
func loadFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)
	cfg.DocsDir = expandHomePath(cfg.DocsDir)
	cfg.OutDir = expandHomePath(cfg.OutDir)
	if cfg.OutDir == "" {
		cfg.OutDir = filepath.Join(cfg.DocsDir, "releases")
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: RELDOCS_OPENAI__BASE_URL -> openai.base_url
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// GeneratorOptions returns the settings needed to build the configured generator.
func (c *Configuration) GeneratorOptions() generate.Options {
	return generate.Options{
		Kind:   c.Generator,
		OpenAI: c.OpenAI,
		Agent:  c.Agent,
	}
}

// IndexOptions returns the documentation index headings. The releases
// directory is left empty so the pipeline derives it from docs_dir and out_dir.
func (c *Configuration) IndexOptions() docindex.Options {
	opts := docindex.DefaultOptions()
	opts.ReleasesDir = ""
	opts.ChangelogFile = c.ChangelogFile
	if c.ConventionsHeading != "" {
		opts.ConventionsHeading = c.ConventionsHeading
	}
	return opts
}
