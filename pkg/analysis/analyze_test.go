package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdnest/pkg/analysis"
	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/nested"
	"github.com/yaklabco/gomdnest/pkg/runner"
)

func violation(id, name string, line int) nested.Violation {
	return nested.Violation{
		RuleNames: []string{id, name},
		Line:      line,
		Severity:  config.SeverityError,
	}
}

func sampleResult() *runner.Result {
	outer := nested.Block{Content: "# A\n", RootLine: 3, Depth: 0, LanguageTag: "markdown"}
	inner := nested.Block{Content: "# B\n", RootLine: 8, Depth: 1, LanguageTag: "md"}
	other := nested.Block{Content: "# C\n", RootLine: 2, Depth: 0, LanguageTag: "md"}

	return &runner.Result{
		Files: []nested.FileReport{
			{
				Path:   "/repo/a.md",
				Blocks: []nested.Block{outer, inner},
				Results: []nested.BlockResult{
					{Block: outer, Index: 1, Violations: []nested.Violation{
						violation("MD009", "no-trailing-spaces", 1),
						violation("MD009", "no-trailing-spaces", 2),
					}},
					{Block: inner, Index: 2, Violations: []nested.Violation{
						violation("MD013", "line-length", 1),
					}},
				},
			},
			{
				Path:   "/repo/docs/b.md",
				Blocks: []nested.Block{other},
				Results: []nested.BlockResult{
					{Block: other, Index: 1, Violations: []nested.Violation{
						violation("MD013", "line-length", 1),
					}},
				},
			},
			{Path: "/repo/plain.md"},
		},
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{
		SortBy:     analysis.SortByCount,
		WorkingDir: "/repo",
	})

	assert.Equal(t, 4, report.Totals.Issues)
	assert.Equal(t, 4, report.Totals.Errors)
	assert.Equal(t, 1, report.Totals.DeepestBlock)
	assert.True(t, report.Totals.HasIssues())

	require.Len(t, report.ByRule, 2)
	assert.Equal(t, analysis.RuleAnalysis{
		RuleID:   "MD009",
		RuleName: "no-trailing-spaces",
		Issues:   2,
		Blocks:   1,
		Files:    []string{"a.md"},
	}, report.ByRule[0])
	assert.Equal(t, "MD013", report.ByRule[1].RuleID)
	assert.Equal(t, 2, report.ByRule[1].Blocks)
	assert.Equal(t, []string{"a.md", "docs/b.md"}, report.ByRule[1].Files)

	require.Len(t, report.ByFile, 2)
	assert.Equal(t, "a.md", report.ByFile[0].Path)
	assert.Equal(t, 3, report.ByFile[0].Issues)
	assert.Equal(t, []string{"MD009", "MD013"}, report.ByFile[0].Rules)

	assert.Equal(t, []analysis.DepthAnalysis{
		{Depth: 0, Blocks: 2, Issues: 3},
		{Depth: 1, Blocks: 1, Issues: 1},
	}, report.ByDepth)
}

func TestAnalyzeAlphaSort(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{SortBy: analysis.SortByAlpha})

	require.Len(t, report.ByFile, 2)
	assert.Equal(t, "/repo/a.md", report.ByFile[0].Path)
	assert.Equal(t, "/repo/docs/b.md", report.ByFile[1].Path)
}

func TestAnalyzeNil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())
	assert.Equal(t, analysis.ReportVersion, report.Version)
	assert.Empty(t, report.ByRule)
	assert.False(t, report.Totals.HasIssues())
}

func TestSortFieldIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, analysis.SortByCount.IsValid())
	assert.True(t, analysis.SortByAlpha.IsValid())
	assert.False(t, analysis.SortField("severity").IsValid())
}
