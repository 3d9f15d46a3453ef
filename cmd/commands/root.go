package commands

// Root command for Cobra CLI
// Running without a subcommand generates the chart once
// Registers the publish and watch subcommands

import (
	"langchart/internal/infra/config"

	"github.com/spf13/cobra"
)

// NewRootCmd builds a fresh command tree; tests use it to avoid shared flag state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "langchart",
		Short: "Render a top-languages SVG chart from WakaTime summaries",
		Long: `langchart fetches the last days of WakaTime summaries for the current user,
sums coding time per language and writes a horizontal bar chart of the top languages
to assets/top-langs.svg, ready to embed in a profile README.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
