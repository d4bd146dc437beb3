package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdnest/internal/logging"
	"github.com/yaklabco/gomdnest/pkg/fsutil"
	"github.com/yaklabco/gomdnest/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

const defaultInitPath = ".markdownlint.yaml"

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .markdownlint.yaml",
		Long: `Create a .markdownlint.yaml in the current directory that enables every
rule and lists each one, commented out, ready to be switched off or tuned.

Examples:
  gomdnest init                      Create .markdownlint.yaml
  gomdnest init --output docs/.markdownlint.yaml
  gomdnest init --force              Overwrite an existing file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultInitPath, "output file path")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, flags *initFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.NewWithWriter(out, "info")

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content := starterConfig(lint.DefaultRegistry.Rules())
	if err := fsutil.WriteAtomic(ctx, absPath, []byte(content), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'gomdnest rules' to see what each rule checks")

	return nil
}

// starterConfig renders a markdownlint YAML file enabling every rule, with
// one commented entry per rule.
func starterConfig(rules []lint.Rule) string {
	var b strings.Builder

	b.WriteString("# markdownlint configuration, also read by gomdnest.\n")
	b.WriteString("# Keys may be rule IDs, rule names or tags. false disables a rule,\n")
	b.WriteString("# an object enables it with options.\n")
	b.WriteString("default: true\n")

	for _, rule := range rules {
		note := ""
		if isSuppressed(rule.ID()) {
			note = " (never applied inside code fences)"
		}
		fmt.Fprintf(&b, "# %s: false  # %s%s\n", rule.ID(), rule.Name(), note)
	}

	return b.String()
}
