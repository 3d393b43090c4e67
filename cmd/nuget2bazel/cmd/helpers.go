package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-nuget2bazel/config"
)

// outputPermissions is the file permission mode for generated files.
const outputPermissions = 0o644

// loadConfig reads the config file, or returns the defaults without one.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	return cfg, nil
}

// logLevel maps the global verbosity flags to a log level.
func logLevel() log.Level {
	switch {
	case verbose:
		return log.DebugLevel
	case quiet:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// newLogger returns a slog logger backed by a charm handler writing to w.
func newLogger(w io.Writer) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:  logLevel(),
		Prefix: "nuget2bazel",
	})
	return slog.New(handler)
}

// writeOutput writes data to path, or to the command's stdout when path
// is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, outputPermissions); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
