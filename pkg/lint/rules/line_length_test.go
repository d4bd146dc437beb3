package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdnest/pkg/lint"
)

func TestMaxLineLengthRule(t *testing.T) {
	t.Parallel()

	long := "hello world again"
	short := map[string]any{"line_length": 10}

	runRuleCases(t, func() lint.Rule { return NewMaxLineLengthRule() }, []ruleCase{
		{name: "short line", input: "Short line\n", wantDiags: 0},
		{name: "long word tolerated", input: strings.Repeat("a", 100) + "\n", wantDiags: 0},
		{
			name:      "long word strict",
			input:     strings.Repeat("a", 100) + "\n",
			config:    map[string]any{"strict": true},
			wantDiags: 1,
		},
		{name: "wrappable line", input: long + "\n", config: short, wantDiags: 1, wantLines: []int{1}},
		{
			name:      "heading excluded",
			input:     "# " + long + "\n",
			config:    map[string]any{"line_length": 10, "headings": false},
			wantDiags: 0,
		},
		{
			name:      "heading own limit",
			input:     "# " + long + "\n",
			config:    map[string]any{"line_length": 10, "heading_line_length": 40},
			wantDiags: 0,
		},
		{name: "code checked", input: "```\n" + long + "\n```\n", config: short, wantDiags: 1, wantLines: []int{2}},
		{
			name:      "code excluded",
			input:     "```\n" + long + "\n```\n",
			config:    map[string]any{"line_length": 10, "code_blocks": false},
			wantDiags: 0,
		},
		{
			name:      "code own limit",
			input:     "```\n" + long + "\n```\n",
			config:    map[string]any{"line_length": 10, "code_block_line_length": 40},
			wantDiags: 0,
		},
		{
			name:      "reference definition",
			input:     "[ref]: https://example.com/some/long/path\n",
			config:    map[string]any{"line_length": 10, "strict": true},
			wantDiags: 0,
		},
		{
			name:      "tables excluded",
			input:     "| a | b | c | d |\n| - | - | - | - |\n",
			config:    map[string]any{"line_length": 10, "tables": false},
			wantDiags: 0,
		},
	})

	diags := applyRule(t, NewMaxLineLengthRule(), long+"\n", short)
	require.Len(t, diags, 1)
	assert.Equal(t, 11, diags[0].StartColumn)
	assert.Equal(t, "Expected: 10; Actual: 17", diags[0].Detail)
}

func TestMaxLineLengthRuleCountsRunes(t *testing.T) {
	t.Parallel()

	line := strings.Repeat("é", 10) + "\n"
	diags := applyRule(t, NewMaxLineLengthRule(), line, map[string]any{"line_length": 10, "strict": true})
	assert.Empty(t, diags)
}
