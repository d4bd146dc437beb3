package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdnest/internal/configloader"
	"github.com/yaklabco/gomdnest/internal/logging"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration a lint run in the current directory would use,
after config file discovery and GOMDNEST_* environment overrides.

Environment variables:
` + envVarHelp(),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
				WorkingDir:   workDir,
				ExplicitPath: global.configPath,
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrConfig, err)
			}

			logger := logging.Default()
			for _, warning := range loadResult.Warnings {
				logger.Warn(warning)
			}

			content, err := loadResult.Config.ToYAML()
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}

			out := cmd.OutOrStdout()
			source := loadResult.LoadedFrom
			if source == "" {
				source = "defaults"
			}
			if _, err := fmt.Fprintf(out, "# source: %s\n%s", source, content); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			return nil
		},
	}
}

func envVarHelp() string {
	vars := configloader.ListEnvVars()

	var help strings.Builder
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&help, "  %-20s %s\n", name, vars[name])
	}
	return help.String()
}
