// Package config loads nuget2bazel configuration files.
//
// A configuration names the targets content is resolved for and the
// packaging policy applied to the emitted entries. TOML and YAML are
// supported; the format follows the file extension.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/go-nuget2bazel/content"
	"github.com/albertocavalcante/go-nuget2bazel/framework"
	"github.com/albertocavalcante/go-nuget2bazel/sdk"
	"github.com/albertocavalcante/go-nuget2bazel/workspace"
)

// ErrUnsupportedFormat is returned for configuration files that are
// neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// DefaultFramework is the target used when a configuration lists none.
const DefaultFramework = "net472"

// Config is the on-disk configuration.
type Config struct {
	Targets          []Target                    `toml:"targets" yaml:"targets"`
	MainFile         string                      `toml:"main_file" yaml:"main_file"`
	Exempt           []string                    `toml:"exempt" yaml:"exempt"`
	SourceRules      []workspace.SourceRule      `toml:"source_rules" yaml:"source_rules"`
	VersionOverrides []workspace.VersionOverride `toml:"version_overrides" yaml:"version_overrides"`
	Concurrency      int                         `toml:"concurrency" yaml:"concurrency"`

	// UseDefaultPolicy keeps the built-in source and version exceptions
	// ahead of the configured ones. Unset means true.
	UseDefaultPolicy *bool `toml:"use_default_policy" yaml:"use_default_policy"`
}

// Target is a framework folder name with an optional runtime identifier.
type Target struct {
	Framework string `toml:"framework" yaml:"framework"`
	Runtime   string `toml:"runtime" yaml:"runtime"`
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Default returns the configuration used without a config file.
func Default() *Config {
	return &Config{Targets: []Target{{Framework: DefaultFramework}}}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates configuration data. ext selects the format
// (".toml", ".yaml" or ".yml").
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if len(cfg.Targets) == 0 {
		cfg.Targets = Default().Targets
	}
	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return &cfg, nil
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if len(cfg.Targets) == 0 {
		errs = append(errs, "at least one target is required")
	}
	for i, t := range cfg.Targets {
		if strings.TrimSpace(t.Framework) == "" {
			errs = append(errs, fmt.Sprintf("targets[%d]: framework is required", i))
			continue
		}
		if _, err := framework.Parse(t.Framework); err != nil {
			errs = append(errs, fmt.Sprintf("targets[%d]: %v", i, err))
		}
	}

	for i, r := range cfg.SourceRules {
		if r.URL == "" {
			errs = append(errs, fmt.Sprintf("source_rules[%d]: url is required", i))
		}
		if r.Prefix == "" && r.Suffix == "" {
			errs = append(errs, fmt.Sprintf("source_rules[%d]: prefix or suffix is required", i))
		}
	}

	for i, o := range cfg.VersionOverrides {
		if o.ID == "" || o.Version == "" || o.Replacement == "" {
			errs = append(errs, fmt.Sprintf("version_overrides[%d]: id, version and replacement are required", i))
		}
	}

	if cfg.Concurrency < 0 {
		errs = append(errs, "concurrency must not be negative")
	}
	return errs
}

// ContentTargets converts the configured targets.
func (c *Config) ContentTargets() ([]content.Target, error) {
	out := make([]content.Target, 0, len(c.Targets))
	for _, t := range c.Targets {
		f, err := framework.Parse(t.Framework)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", t.Framework, err)
		}
		out = append(out, content.Target{Framework: f, RuntimeIdentifier: t.Runtime})
	}
	return out, nil
}

// Policy returns the effective packaging policy.
func (c *Config) Policy() workspace.Policy {
	custom := workspace.Policy{SourceRules: c.SourceRules, VersionOverrides: c.VersionOverrides}
	if c.UseDefaultPolicy != nil && !*c.UseDefaultPolicy {
		return workspace.Policy{}.Extend(custom)
	}
	return workspace.DefaultPolicy().Extend(custom)
}

// Exemptions returns the platform assemblies plus the configured ids.
func (c *Config) Exemptions() *sdk.Exemptions {
	return sdk.NewExemptions(c.Exempt...)
}
