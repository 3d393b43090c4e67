package nuget2bazel

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/albertocavalcante/go-nuget2bazel/config"
	"github.com/albertocavalcante/go-nuget2bazel/content"
	"github.com/albertocavalcante/go-nuget2bazel/sdk"
	"github.com/albertocavalcante/go-nuget2bazel/workspace"
)

// Option configures a conversion.
type Option func(*converterConfig) error

// converterConfig holds all conversion configuration.
type converterConfig struct {
	targets     []content.Target
	conventions *content.Conventions
	policy      workspace.Policy
	exemptions  *sdk.Exemptions
	mainFile    string
	concurrency int

	// logger is the structured logger for debug output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

func newConverterConfig(opts []Option) (*converterConfig, error) {
	cfg := &converterConfig{
		policy:     workspace.DefaultPolicy(),
		exemptions: sdk.NewExemptions(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg, nil
}

// WithTargets appends targets content is resolved for. Order matters: it is
// the order of the per-target groups and of the emitted dictionaries.
func WithTargets(targets ...content.Target) Option {
	return func(c *converterConfig) error {
		c.targets = append(c.targets, targets...)
		return nil
	}
}

// WithConventions replaces the default asset conventions.
func WithConventions(conv content.Conventions) Option {
	return func(c *converterConfig) error {
		c.conventions = &conv
		return nil
	}
}

// WithPolicy sets the source and version exceptions. The default is
// workspace.DefaultPolicy.
func WithPolicy(p workspace.Policy) Option {
	return func(c *converterConfig) error {
		c.policy = p
		return nil
	}
}

// WithExemptions sets the ids whose dependency edges always survive
// pruning. The default holds only the platform assemblies.
func WithExemptions(e *sdk.Exemptions) Option {
	return func(c *converterConfig) error {
		if e == nil {
			return errors.New("exemptions must not be nil")
		}
		c.exemptions = e
		return nil
	}
}

// WithMainFile sets the main-file override of every non-synthetic entry.
func WithMainFile(name string) Option {
	return func(c *converterConfig) error {
		c.mainFile = name
		return nil
	}
}

// WithConcurrency bounds the number of packages processed at once.
// Zero means GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(c *converterConfig) error {
		c.concurrency = n
		return nil
	}
}

// WithLogger sets a structured logger for conversion diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	nuget2bazel.Convert(ctx, pkgs, nuget2bazel.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *converterConfig) error {
		c.logger = l
		return nil
	}
}

// WithConfig applies a loaded configuration file: its targets, policy,
// exemptions, main file and concurrency.
func WithConfig(cfg *config.Config) Option {
	return func(c *converterConfig) error {
		if cfg == nil {
			return errors.New("config must not be nil")
		}
		targets, err := cfg.ContentTargets()
		if err != nil {
			return err
		}
		c.targets = append(c.targets, targets...)
		c.policy = cfg.Policy()
		c.exemptions = cfg.Exemptions()
		c.mainFile = cfg.MainFile
		c.concurrency = cfg.Concurrency
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *converterConfig) validate() error {
	if len(c.targets) == 0 {
		return ErrNoTargets
	}
	if c.concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	return nil
}
