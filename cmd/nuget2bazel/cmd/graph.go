package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	nuget2bazel "github.com/albertocavalcante/go-nuget2bazel"
)

var (
	graphPackages string
	graphFormat   string
	graphOutput   string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the dependency graph of the generated rules",
	Long: `Converts a package descriptor file and prints the dependency graph of
the resulting rules. Dependencies without a generated rule are shown as
external nodes; rules split off a multi-assembly package as synthetic ones.`,
	Example: `  nuget2bazel graph --packages packages.json
  nuget2bazel graph --packages packages.json --format dot | dot -Tsvg > deps.svg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr())

		result, err := nuget2bazel.ConvertFile(cmd.Context(), graphPackages,
			nuget2bazel.WithConfig(cfg),
			nuget2bazel.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		g := result.Graph()
		for _, cycle := range g.FindCycles() {
			logger.Warn("dependency cycle", "path", cycle)
		}

		var out []byte
		switch graphFormat {
		case "text":
			out = []byte(g.ToText())
		case "dot":
			out = []byte(g.ToDOT())
		case "json":
			data, err := g.ToJSON()
			if err != nil {
				return err
			}
			out = append(data, '\n')
		default:
			return fmt.Errorf("unknown format %q (want text, dot or json)", graphFormat)
		}
		return writeOutput(cmd, graphOutput, out)
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphPackages, "packages", "", "package descriptor file (JSON or YAML)")
	graphCmd.Flags().StringVar(&graphFormat, "format", "text", "output format: text, dot or json")
	graphCmd.Flags().StringVarP(&graphOutput, "output", "o", "", "output file (default stdout)")
	_ = graphCmd.MarkFlagRequired("packages")
	rootCmd.AddCommand(graphCmd)
}
