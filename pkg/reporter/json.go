package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdnest/pkg/analysis"
	"github.com/yaklabco/gomdnest/pkg/nested"
	"github.com/yaklabco/gomdnest/pkg/runner"
)

// jsonSchemaVersion changes whenever the document shape does.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Verdict string      `json:"verdict"`
	Files   []JSONFile  `json:"files"`
	Missing []string    `json:"missing,omitempty"`
	Summary JSONSummary `json:"summary"`

	// Analysis breaks violations down by rule, file and depth.
	Analysis *analysis.Report `json:"analysis,omitempty"`
}

// JSONFile represents a single file's results.
type JSONFile struct {
	Path   string      `json:"path"`
	Blocks int         `json:"blocks"`
	Error  string      `json:"error,omitempty"`
	Checks []JSONBlock `json:"checks"`
}

// JSONBlock is one checked fence.
type JSONBlock struct {
	Index      int             `json:"index"`
	Line       int             `json:"line"`
	Depth      int             `json:"depth"`
	Tag        string          `json:"tag"`
	Ancestry   string          `json:"ancestry"`
	Error      string          `json:"error,omitempty"`
	Violations []JSONViolation `json:"violations"`
}

// JSONViolation is one rule failure. Line is the file line; NestedLine is
// the line within the block content.
type JSONViolation struct {
	RuleID      string   `json:"ruleId"`
	RuleNames   []string `json:"ruleNames"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Detail      string   `json:"detail,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Line        int      `json:"line"`
	NestedLine  int      `json:"nestedLine"`
	Column      int      `json:"column"`
	Length      int      `json:"length,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesScanned     int `json:"filesScanned"`
	FilesWithBlocks  int `json:"filesWithBlocks"`
	BlocksFound      int `json:"blocksFound"`
	BlocksChecked    int `json:"blocksChecked"`
	BlocksWithIssues int `json:"blocksWithIssues"`
	Violations       int `json:"violations"`
	InternalErrors   int `json:"internalErrors"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Violations, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Verdict: nested.VerdictNoBlocks.String(),
		Files:   make([]JSONFile, 0),
	}

	if result == nil {
		return output
	}

	base := baseDir(r.opts, result)
	output.Verdict = result.Verdict().String()
	output.Missing = result.Discovery.Missing
	output.Summary = JSONSummary(result.Stats)
	output.Analysis = analysis.Analyze(result, analysis.Options{
		SortBy:     analysis.SortByCount,
		WorkingDir: base,
	})

	for i := range result.Files {
		file := &result.Files[i]
		jsonFile := JSONFile{
			Path:   displayPath(base, file.Path),
			Blocks: len(file.Blocks),
			Checks: make([]JSONBlock, 0, len(file.Results)),
		}
		if file.Err != nil {
			jsonFile.Error = file.Err.Error()
		}

		for _, res := range file.Results {
			jsonFile.Checks = append(jsonFile.Checks, newJSONBlock(res))
		}

		output.Files = append(output.Files, jsonFile)
	}

	return output
}

func newJSONBlock(res nested.BlockResult) JSONBlock {
	block := JSONBlock{
		Index:      res.Index,
		Line:       res.Block.RootLine,
		Depth:      res.Block.Depth,
		Tag:        res.Block.LanguageTag,
		Ancestry:   res.Block.AncestryPath,
		Violations: make([]JSONViolation, 0, len(res.Violations)),
	}
	if res.Err != nil {
		block.Error = res.Err.Error()
	}

	for _, v := range res.Violations {
		jv := JSONViolation{
			RuleID:      v.RuleID(),
			RuleNames:   v.RuleNames,
			Severity:    severityName(v),
			Description: v.Description,
			Detail:      v.Detail,
			Suggestion:  v.Suggestion,
			Line:        res.AbsoluteLine(v),
			NestedLine:  v.Line,
			Column:      v.Column(),
		}
		if v.Range != nil {
			jv.Length = v.Range.Length
		}
		block.Violations = append(block.Violations, jv)
	}

	return block
}

func severityName(v nested.Violation) string {
	if v.Severity == "" {
		return "warning"
	}
	return string(v.Severity)
}
