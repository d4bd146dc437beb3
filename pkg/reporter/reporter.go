// Package reporter renders the outcome of a nested Markdown run as text,
// JSON or SARIF. Reporters only present results; they never decide the exit
// status.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdnest/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of violations reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.Version == "" {
		opts.Version = defaults.Version
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func baseDir(opts Options, result *runner.Result) string {
	if opts.WorkingDir != "" {
		return opts.WorkingDir
	}
	if result != nil {
		return result.Discovery.WorkingDir
	}
	return ""
}
