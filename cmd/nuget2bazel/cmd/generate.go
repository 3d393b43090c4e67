package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bazelbuild/buildtools/build"
	"github.com/spf13/cobra"

	nuget2bazel "github.com/albertocavalcante/go-nuget2bazel"
	"github.com/albertocavalcante/go-nuget2bazel/workspace"
)

var (
	generatePackages  string
	generateWorkspace string
	generateOutput    string
	generateDryRun    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate nuget_package rules",
	Long: `Reads a package descriptor file (JSON or YAML) and emits one
nuget_package rule per workspace entry.

Without --workspace the rules are written as a new .bzl file. With
--workspace, rules are merged into the existing file: rules of the same
name are replaced in place and new rules are appended. The merged file
is written back unless --output names another destination.`,
	Example: `  nuget2bazel generate --packages packages.json > nuget_packages.bzl
  nuget2bazel generate --packages packages.yaml --workspace WORKSPACE
  nuget2bazel generate --packages packages.json --workspace WORKSPACE --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr())

		result, err := nuget2bazel.ConvertFile(cmd.Context(), generatePackages,
			nuget2bazel.WithConfig(cfg),
			nuget2bazel.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		logger.Debug("converted packages", "packages", len(result.Resolved), "entries", len(result.Entries))

		if generateWorkspace == "" {
			if generateDryRun {
				printDiff(cmd.OutOrStdout(), workspace.DiffEntries(nil, result.Entries))
				return nil
			}
			return writeOutput(cmd, generateOutput, result.Format())
		}

		data, err := os.ReadFile(generateWorkspace)
		if err != nil {
			return fmt.Errorf("reading workspace: %w", err)
		}
		f, err := workspace.Parse(generateWorkspace, data)
		if err != nil {
			return err
		}

		if generateDryRun {
			printDiff(cmd.OutOrStdout(), workspace.DiffEntries(workspace.ExistingEntries(f), result.Entries))
			return nil
		}

		merged := result.Merge(f)
		dest := generateOutput
		if dest == "" {
			dest = generateWorkspace
		}
		if err := writeOutput(cmd, dest, build.FormatWithoutRewriting(f)); err != nil {
			return err
		}
		logger.Info("merged workspace", "path", dest, "added", len(merged.Added), "replaced", len(merged.Replaced))
		return nil
	},
}

// printDiff writes a human-readable summary of d.
func printDiff(w io.Writer, d *workspace.Diff) {
	if d.IsEmpty() {
		fmt.Fprintln(w, "No changes.")
		return
	}
	for _, c := range d.Added {
		fmt.Fprintf(w, "  + %s %s\n", c.Name, c.Version)
	}
	for _, u := range d.Upgraded {
		fmt.Fprintf(w, "  ^ %s %s -> %s\n", u.Name, u.OldVersion, u.NewVersion)
	}
	for _, u := range d.Downgraded {
		fmt.Fprintf(w, "  v %s %s -> %s\n", u.Name, u.OldVersion, u.NewVersion)
	}
	for _, c := range d.Removed {
		fmt.Fprintf(w, "  - %s %s (kept by merge)\n", c.Name, c.Version)
	}
	fmt.Fprintf(w, "\n%d added, %d upgraded, %d downgraded, %d not generated.\n",
		len(d.Added), len(d.Upgraded), len(d.Downgraded), len(d.Removed))
}

func init() {
	generateCmd.Flags().StringVar(&generatePackages, "packages", "", "package descriptor file (JSON or YAML)")
	generateCmd.Flags().StringVar(&generateWorkspace, "workspace", "", "existing WORKSPACE or .bzl file to merge into")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file (default stdout, or the workspace file when merging)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "show what would change without writing files")
	_ = generateCmd.MarkFlagRequired("packages")
	rootCmd.AddCommand(generateCmd)
}
