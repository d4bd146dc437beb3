package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdnest/internal/ui/pretty"
	"github.com/yaklabco/gomdnest/pkg/nested"
	"github.com/yaklabco/gomdnest/pkg/runner"
)

// TextReporter writes the human-readable report: a scan log, the issues
// grouped by file and fence, and a closing verdict line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}
	base := baseDir(r.opts, result)

	fmt.Fprintln(r.bw, r.styles.Title.Render("Linting nested Markdown in code fences..."))
	fmt.Fprintln(r.bw)

	r.writeScanLog(result, base)
	r.writeIssues(result, base)

	fmt.Fprintln(r.bw, r.styles.FormatVerdict(result.Verdict(), result.Stats.InternalErrors))

	return result.Stats.Violations, nil
}

func (r *TextReporter) writeScanLog(result *runner.Result, base string) {
	files := len(result.Discovery.Files)
	if result.Discovery.Explicit {
		fmt.Fprintf(r.bw, "Linting %d specified file(s)\n\n", files)
	} else {
		fmt.Fprintf(r.bw, "Found %d Markdown file(s) to scan\n\n", files)
	}

	for i := range result.Files {
		file := &result.Files[i]
		if len(file.Blocks) == 0 {
			continue
		}
		fmt.Fprintf(r.bw, "%s: Found %d nested Markdown block(s)\n",
			r.styles.FilePath.Render(displayPath(base, file.Path)), len(file.Blocks))
	}

	fmt.Fprintf(r.bw, "\nTotal nested Markdown blocks found: %d\n\n", result.Stats.BlocksFound)
}

func (r *TextReporter) writeIssues(result *runner.Result, base string) {
	if result.Stats.Violations == 0 && result.Stats.InternalErrors == 0 {
		fmt.Fprintln(r.bw, r.styles.FormatNoIssues())
		fmt.Fprintln(r.bw)
		return
	}

	fmt.Fprintln(r.bw, r.styles.Divider(r.width))
	fmt.Fprintln(r.bw, r.styles.Failure.Render("Nested Markdown Linting Issues:"))
	fmt.Fprintln(r.bw)

	for i := range result.Files {
		file := &result.Files[i]
		path := displayPath(base, file.Path)

		if file.Err != nil {
			fmt.Fprintf(r.bw, "%s %s\n", r.styles.FilePath.Render("File:"), path)
			fmt.Fprint(r.bw, r.styles.FormatInternalError(file.Err, "  "))
			fmt.Fprintln(r.bw)
			continue
		}

		for _, res := range file.Failing() {
			fmt.Fprintf(r.bw, "%s %s\n", r.styles.FilePath.Render("File:"), path)
			r.writeBlock(res)
			fmt.Fprintln(r.bw)
		}
	}
}

func (r *TextReporter) writeBlock(res nested.BlockResult) {
	fmt.Fprintln(r.bw, "  "+r.styles.FormatFenceHeader(res))
	for _, v := range res.Violations {
		fmt.Fprint(r.bw, r.styles.FormatViolation(res, v, "    "))
	}
	if res.Err != nil {
		fmt.Fprint(r.bw, r.styles.FormatInternalError(res.Err, "    "))
	}
}
