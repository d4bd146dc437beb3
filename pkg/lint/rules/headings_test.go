package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdnest/pkg/lint"
)

func TestHeadingIncrementRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewHeadingIncrementRule() }, []ruleCase{
		{name: "sequential levels", input: "# A\n\n## B\n\n### C\n", wantDiags: 0},
		{name: "skipped level", input: "# A\n\n### C\n", wantDiags: 1, wantLines: []int{3}},
		{name: "decrease is fine", input: "## A\n\n# B\n\n## C\n", wantDiags: 0},
		{name: "first heading deep", input: "### A\n", wantDiags: 0},
		{name: "two skips", input: "# A\n\n### B\n\n##### C\n", wantDiags: 2, wantLines: []int{3, 5}},
	})

	diags := applyRule(t, NewHeadingIncrementRule(), "# A\n\n### C\n", nil)
	require.Len(t, diags, 1)
	assert.Equal(t, "Expected: h2; Actual: h3", diags[0].Detail)
}

func TestNoMissingSpaceATXRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewNoMissingSpaceATXRule() }, []ruleCase{
		{name: "missing space", input: "#Heading\n", wantDiags: 1, wantLines: []int{1}},
		{name: "level two", input: "Text\n\n##Heading\n", wantDiags: 1, wantLines: []int{3}},
		{name: "proper heading", input: "# Heading\n", wantDiags: 0},
		{name: "hash only", input: "#\n", wantDiags: 0},
		{name: "inside code block", input: "```\n#not\n```\n", wantDiags: 0},
		{name: "inside blockquote", input: "> #Quote\n", wantDiags: 1, wantLines: []int{1}},
	})

	diags := applyRule(t, NewNoMissingSpaceATXRule(), "> ##Quote\n", nil)
	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].StartColumn)
	assert.Equal(t, 3, diags[0].RangeLength())
}

func TestHeadingBlankLinesRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewHeadingBlankLinesRule() }, []ruleCase{
		{name: "surrounded", input: "# A\n\nText\n", wantDiags: 0},
		{name: "only heading", input: "# A\n", wantDiags: 0},
		{name: "missing below", input: "# A\nText\n", wantDiags: 1, wantLines: []int{1}},
		{name: "missing above", input: "Text\n# A\n\nMore\n", wantDiags: 1, wantLines: []int{2}},
		{name: "setext missing below", input: "Title\n=====\nText\n", wantDiags: 1, wantLines: []int{1}},
		{
			name:      "two lines above required",
			input:     "Text\n\n# A\n",
			config:    map[string]any{"lines_above": 2},
			wantDiags: 1,
		},
		{
			name:      "above check disabled",
			input:     "Text\n# A\n",
			config:    map[string]any{"lines_above": -1},
			wantDiags: 0,
		},
	})

	diags := applyRule(t, NewHeadingBlankLinesRule(), "# A\nText\n", nil)
	require.Len(t, diags, 1)
	assert.Equal(t, "Expected: 1; Actual: 0; Below", diags[0].Detail)
}

func TestSingleH1Rule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewSingleH1Rule() }, []ruleCase{
		{name: "single title", input: "# A\n\n## B\n", wantDiags: 0},
		{name: "second title", input: "# A\n\n# B\n", wantDiags: 1, wantLines: []int{3}},
		{name: "no leading title", input: "Intro\n\n# A\n\n# B\n", wantDiags: 0},
		{name: "comment before title", input: "<!-- c -->\n# A\n\n# B\n", wantDiags: 1, wantLines: []int{4}},
		{
			name:      "custom level",
			input:     "## A\n\n## B\n",
			config:    map[string]any{"level": 2},
			wantDiags: 1,
		},
	})
}

func TestNoTrailingPunctuationRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewNoTrailingPunctuationRule() }, []ruleCase{
		{name: "period", input: "# Title.\n", wantDiags: 1, wantLines: []int{1}},
		{name: "clean", input: "# Title\n", wantDiags: 0},
		{name: "question mark allowed", input: "# FAQ?\n", wantDiags: 0},
		{name: "closed atx", input: "# Title!  #\n", wantDiags: 1},
		{name: "setext", input: "Title:\n======\n", wantDiags: 1, wantLines: []int{1}},
		{
			name:      "empty punctuation disables",
			input:     "# Title.\n",
			config:    map[string]any{"punctuation": ""},
			wantDiags: 0,
		},
		{
			name:      "custom punctuation",
			input:     "# FAQ?\n",
			config:    map[string]any{"punctuation": "?"},
			wantDiags: 1,
		},
	})

	diags := applyRule(t, NewNoTrailingPunctuationRule(), "# Title!  #\n", nil)
	require.Len(t, diags, 1)
	assert.Equal(t, 8, diags[0].StartColumn)
	assert.Equal(t, `Punctuation: "!"`, diags[0].Detail)
}

func TestFirstLineHeadingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewFirstLineHeadingRule() }, []ruleCase{
		{name: "title first", input: "# Title\n", wantDiags: 0},
		{name: "text first", input: "Text\n", wantDiags: 1, wantLines: []int{1}},
		{name: "sub heading first", input: "## Sub\n", wantDiags: 1},
		{name: "comment then title", input: "<!-- c -->\n# Title\n", wantDiags: 0},
		{name: "html title", input: "<h1 align=\"center\">Title</h1>\n", wantDiags: 0},
		{name: "empty", input: "", wantDiags: 0},
		{
			name:      "custom level",
			input:     "## Sub\n",
			config:    map[string]any{"level": 2},
			wantDiags: 0,
		},
	})
}
