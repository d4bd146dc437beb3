// Package cli provides the Cobra command structure for gomdnest.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdnest/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	version    string
}

// NewRootCommand creates the root gomdnest command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{version: info.Version}

	rootCmd := &cobra.Command{
		Use:   "gomdnest",
		Short: "Lint Markdown nested inside markdown code fences",
		Long: `gomdnest finds fenced code blocks tagged markdown or md, lints their
contents as standalone Markdown documents and reports every problem at its
line in the enclosing file. Fences nested inside those blocks are followed
recursively.

Rules and their options come from the nearest .markdownlint.jsonc,
.markdownlint.json, .markdownlint.yaml or .markdownlint.yml file. MD041 and
MD051 are never applied to nested blocks.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"path to a markdownlint config file (overrides discovery)")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(flags))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
