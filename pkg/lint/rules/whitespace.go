package rules

import (
	"bytes"
	"strconv"

	"github.com/yaklabco/gomdnest/pkg/lint"
)

// TrailingWhitespaceRule flags spaces at the end of lines.
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates the MD009 rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"MD009",
			"no-trailing-spaces",
			"Trailing spaces",
			[]string{"whitespace"},
		),
	}
}

// Apply checks every line outside code block bodies. Exactly br_spaces
// trailing spaces are a hard line break and allowed; with strict they are
// only allowed when a following line continues the paragraph.
func (r *TrailingWhitespaceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	brSpaces := ctx.OptionInt("br_spaces", 2)
	strict := ctx.OptionBool("strict", false)
	total := ctx.File.LineCount()

	var diags []lint.Diagnostic

	for line := 1; line <= total; line++ {
		if ctx.IsCodeContentLine(line) {
			continue
		}

		content := ctx.File.LineContent(line)
		trimmed := bytes.TrimRight(content, " ")
		trailing := len(content) - len(trimmed)
		if trailing == 0 {
			continue
		}

		if brSpaces >= 2 && trailing == brSpaces {
			breaks := line < total && !ctx.File.IsBlankLine(line+1)
			if !strict || breaks {
				continue
			}
		}

		expected := "0"
		if brSpaces >= 2 && !strict {
			expected = "0 or " + strconv.Itoa(brSpaces)
		}

		diags = append(diags, lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, len(trimmed)+1, trailing,
			r.Description()).
			WithDetail(expectedActual(expected, trailing)).
			WithSuggestion("Remove trailing spaces").
			Build())
	}

	return diags, nil
}

// HardTabsRule flags tab characters.
type HardTabsRule struct {
	lint.BaseRule
}

// NewHardTabsRule creates the MD010 rule.
func NewHardTabsRule() *HardTabsRule {
	return &HardTabsRule{
		BaseRule: lint.NewBaseRule(
			"MD010",
			"no-hard-tabs",
			"Hard tabs",
			[]string{"whitespace", "hard_tab"},
		),
	}
}

// Apply reports each run of tabs once.
func (r *HardTabsRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	codeBlocks := ctx.OptionBool("code_blocks", true)

	var diags []lint.Diagnostic

	for line := 1; line <= ctx.File.LineCount(); line++ {
		if !codeBlocks && ctx.IsLineInCodeBlock(line) {
			continue
		}

		content := ctx.File.LineContent(line)
		for idx := 0; idx < len(content); idx++ {
			if content[idx] != '\t' {
				continue
			}

			run := 1
			for idx+run < len(content) && content[idx+run] == '\t' {
				run++
			}

			diags = append(diags, lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, idx+1, run, r.Description()).
				WithDetail("Column: "+strconv.Itoa(idx+1)).
				WithSuggestion("Replace tabs with spaces").
				Build())
			idx += run - 1
		}
	}

	return diags, nil
}

// MultipleBlankLinesRule limits consecutive blank lines.
type MultipleBlankLinesRule struct {
	lint.BaseRule
}

// NewMultipleBlankLinesRule creates the MD012 rule.
func NewMultipleBlankLinesRule() *MultipleBlankLinesRule {
	return &MultipleBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"MD012",
			"no-multiple-blanks",
			"Multiple consecutive blank lines",
			[]string{"whitespace", "blank_lines"},
		),
	}
}

// Apply reports every blank line beyond the allowed maximum. The empty line
// after a final newline is not a line of content and is never counted.
func (r *MultipleBlankLinesRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	maximum := ctx.OptionInt("maximum", 1)

	total := ctx.File.LineCount()
	if content := ctx.File.Content; len(content) > 0 && content[len(content)-1] == '\n' {
		total--
	}

	var diags []lint.Diagnostic
	run := 0

	for line := 1; line <= total; line++ {
		if ctx.IsCodeContentLine(line) || !ctx.File.IsBlankLine(line) {
			run = 0
			continue
		}

		run++
		if run > maximum {
			diags = append(diags, lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, 1, 0, r.Description()).
				WithDetail(expectedActual(maximum, run)).
				WithSuggestion("Remove the extra blank line").
				Build())
		}
	}

	return diags, nil
}

// FinalNewlineRule requires content to end with a newline.
type FinalNewlineRule struct {
	lint.BaseRule
}

// NewFinalNewlineRule creates the MD047 rule.
func NewFinalNewlineRule() *FinalNewlineRule {
	return &FinalNewlineRule{
		BaseRule: lint.NewBaseRule(
			"MD047",
			"single-trailing-newline",
			"Files should end with a single newline character",
			[]string{"blank_lines"},
		),
	}
}

// Apply checks the final byte of the document.
func (r *FinalNewlineRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	content := ctx.File.Content
	if len(content) == 0 || content[len(content)-1] == '\n' {
		return nil, nil
	}

	line := ctx.File.LineCount()
	col := len(ctx.File.LineContent(line)) + 1

	return []lint.Diagnostic{
		lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, col, 0, r.Description()).
			WithSuggestion("Add a newline at the end of the file").
			Build(),
	}, nil
}
