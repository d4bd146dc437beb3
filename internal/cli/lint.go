package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdnest/internal/configloader"
	"github.com/yaklabco/gomdnest/internal/logging"
	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/lint"
	_ "github.com/yaklabco/gomdnest/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/gomdnest/pkg/nested"
	goldmarkparser "github.com/yaklabco/gomdnest/pkg/parser/goldmark"
	"github.com/yaklabco/gomdnest/pkg/reporter"
	"github.com/yaklabco/gomdnest/pkg/runner"
)

type lintFlags struct {
	format   string
	flavor   string
	ignore   []string
	jobs     int
	maxDepth int
	compact  bool
}

func newLintCommand(global *globalFlags) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Markdown nested in markdown code fences",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, global, flags)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint the Markdown inside code fences tagged markdown or md.

With no arguments every .md and .markdown file below the current directory
is scanned, skipping hidden directories and node_modules. Named files are
linted even without a Markdown extension; missing ones are skipped with a
warning.

Each problem is reported at its line in the enclosing file together with
its line inside the nested block.

Examples:
  gomdnest lint                      # Scan the current directory
  gomdnest lint README.md docs/      # Lint specific files and directories
  gomdnest lint --format sarif       # SARIF for code scanning
  gomdnest lint --ignore 'vendor/**' # Skip a tree`

func runLint(cmd *cobra.Command, args []string, global *globalFlags, flags *lintFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
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

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	cfg := loadResult.Config
	if err := applyLintFlags(cmd, cfg, flags); err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldConfig, loadResult.LoadedFrom,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldMaxDepth, cfg.MaxDepth,
	)

	parser := goldmarkparser.New(string(cfg.Flavor))
	engine := lint.NewEngine(parser, lint.DefaultRegistry)
	lintRunner := runner.New(
		nested.NewExtractor(parser, nested.WithMaxDepth(cfg.MaxDepth)),
		nested.NewAdapter(engine, cfg),
	)

	runOpts := runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Jobs:       cfg.Jobs,
		Config:     cfg,
	}

	logger.Debug("starting lint run",
		logging.FieldFiles, len(runOpts.Paths),
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := lintRunner.Run(logging.WithLogger(ctx, logger), runOpts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	for _, missing := range result.Discovery.Missing {
		logger.Warn("File not found, skipping", logging.FieldPath, missing)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     format,
		Color:      global.color,
		Compact:    flags.compact,
		WorkingDir: workDir,
		Version:    global.version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result) {
	case ExitLintErrors:
		return ErrLintIssuesFound
	case ExitInternalError:
		return ErrInternal
	default:
		return nil
	}
}

// applyLintFlags layers explicitly set flags over the loaded configuration.
func applyLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) error {
	changed := cmd.Flags().Changed

	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("max-depth") {
		cfg.MaxDepth = flags.maxDepth
	}
	cfg.Ignore = append(cfg.Ignore, flags.ignore...)
	cfg.Format = config.OutputFormat(flags.format)

	if err := configloader.Validate(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of files checked in parallel (0 = all CPUs)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", config.DefaultMaxDepth,
		"deepest fence nesting accepted before a file is rejected")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify json and sarif output")
}
