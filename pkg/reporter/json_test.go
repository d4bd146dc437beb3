package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdnest/pkg/reporter"
)

func TestJSONReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	issues, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf}).
		Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, issues)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "failed", output.Verdict)
	assert.Equal(t, 3, output.Summary.FilesScanned)
	assert.Equal(t, 1, output.Summary.InternalErrors)
	require.Len(t, output.Files, 3)

	assert.Equal(t, "clean.md", output.Files[0].Path)
	assert.Equal(t, 1, output.Files[0].Blocks)

	guide := output.Files[1]
	assert.Equal(t, "docs/guide.md", guide.Path)
	require.Len(t, guide.Checks, 2)
	assert.Empty(t, guide.Checks[0].Violations)

	check := guide.Checks[1]
	assert.Equal(t, 2, check.Index)
	assert.Equal(t, 8, check.Line)
	assert.Equal(t, 1, check.Depth)
	assert.Equal(t, "line 5 > block at line 8", check.Ancestry)
	require.Len(t, check.Violations, 1)

	v := check.Violations[0]
	assert.Equal(t, "MD009", v.RuleID)
	assert.Equal(t, []string{"MD009", "no-trailing-spaces"}, v.RuleNames)
	assert.Equal(t, 11, v.Line)
	assert.Equal(t, 3, v.NestedLine)
	assert.Equal(t, 5, v.Column)
	assert.Equal(t, "warning", v.Severity)

	assert.Contains(t, output.Files[2].Error, "runaway")
	assert.Empty(t, output.Files[2].Checks)

	require.NotNil(t, output.Analysis)
	require.Len(t, output.Analysis.ByRule, 1)
	assert.Equal(t, "MD009", output.Analysis.ByRule[0].RuleID)
	assert.Equal(t, []string{"docs/guide.md"}, output.Analysis.ByRule[0].Files)
	assert.Equal(t, 1, output.Analysis.Totals.Warnings)
	require.Len(t, output.Analysis.ByDepth, 2)
	assert.Equal(t, 1, output.Analysis.ByDepth[1].Issues)
}

func TestJSONReportNilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	issues, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true}).
		Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, issues)
	assert.JSONEq(t, `{
		"version": "1.0.0",
		"verdict": "no-blocks",
		"files": [],
		"summary": {
			"filesScanned": 0, "filesWithBlocks": 0, "blocksFound": 0, "blocksChecked": 0,
			"blocksWithIssues": 0, "violations": 0, "internalErrors": 0
		}
	}`, buf.String())
}
