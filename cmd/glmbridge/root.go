package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	glmlog "github.com/davetashner/glmbridge/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for glmbridge.
var rootCmd = &cobra.Command{
	Use:   "glmbridge",
	Short: "Point Claude-style agent tooling at GLM models",
	Long: `Glmbridge adapts Claude-compatible agent tooling to Z.AI's GLM endpoint.
It resolves model aliases (opus, sonnet, haiku) to GLM models, merges tool
allowlists and prompts with your project configuration, and generates the
environment and MCP server wiring the underlying tooling needs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		glmlog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
