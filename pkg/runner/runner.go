package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdnest/internal/logging"
	"github.com/yaklabco/gomdnest/pkg/fsutil"
	"github.com/yaklabco/gomdnest/pkg/nested"
)

// Runner extracts and checks nested Markdown across many files.
type Runner struct {
	Extractor *nested.Extractor
	Adapter   *nested.Adapter
}

// New creates a Runner.
func New(extractor *nested.Extractor, adapter *nested.Adapter) *Runner {
	return &Runner{Extractor: extractor, Adapter: adapter}
}

// Run discovers files and processes them concurrently. Reports come back in
// discovery order whatever order the workers finish in.
//
// Per-file failures (unreadable file, runaway recursion) are recorded on the
// file's report and do not stop the run. Only discovery errors and
// cancellation are returned as errors; on cancellation the partial result is
// returned too.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	disc, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered files",
		logging.FieldFiles, len(disc.Files),
		logging.FieldWorkingDir, disc.WorkingDir)

	result := &Result{Discovery: disc}
	if len(disc.Files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	reports := make([]nested.FileReport, len(disc.Files))

	var group errgroup.Group
	group.SetLimit(min(jobs, len(disc.Files)))

	for i, path := range disc.Files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			reports[i] = r.processFile(ctx, path, jobs)
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		for i := range reports {
			if reports[i].Path != "" {
				result.Files = append(result.Files, reports[i])
				result.accumulate(&result.Files[len(result.Files)-1])
			}
		}
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	result.Files = reports
	for i := range result.Files {
		result.accumulate(&result.Files[i])
	}

	logger.Debug("Run complete",
		logging.FieldBlocks, result.Stats.BlocksFound,
		logging.FieldViolation, result.Stats.Violations)

	return result, nil
}

// ProcessFile extracts and checks a single file.
func (r *Runner) ProcessFile(ctx context.Context, path string) nested.FileReport {
	return r.processFile(ctx, path, runtime.NumCPU())
}

func (r *Runner) processFile(ctx context.Context, path string, jobs int) nested.FileReport {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)
	report := nested.FileReport{Path: path}

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		report.Err = fmt.Errorf("read file: %w", err)
		return report
	}

	blocks, err := r.Extractor.Extract(ctx, path, content)
	if err != nil {
		logger.Debug("Extraction failed", logging.FieldError, err)
		report.Err = err
		return report
	}
	report.Blocks = blocks
	logger.Debug("Extracted blocks", logging.FieldBlocks, len(blocks))

	report.Results = r.checkBlocks(ctx, nested.PendingResults(blocks), jobs)
	return report
}

// checkBlocks fills in results concurrently. Each goroutine owns one slot.
func (r *Runner) checkBlocks(ctx context.Context, results []nested.BlockResult, jobs int) []nested.BlockResult {
	var group errgroup.Group
	group.SetLimit(max(jobs, 1))

	for i := range results {
		group.Go(func() error {
			violations, _, err := r.Adapter.Lint(ctx, results[i].Block)
			results[i].Violations = violations
			results[i].Err = err
			return nil
		})
	}
	_ = group.Wait()

	return results
}
