package rules

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gomdnest/pkg/lint"
	"github.com/yaklabco/gomdnest/pkg/mdast"
)

// HeadingIncrementRule checks that heading levels only increase by one.
type HeadingIncrementRule struct {
	lint.BaseRule
}

// NewHeadingIncrementRule creates the MD001 rule.
func NewHeadingIncrementRule() *HeadingIncrementRule {
	return &HeadingIncrementRule{
		BaseRule: lint.NewBaseRule(
			"MD001",
			"heading-increment",
			"Heading levels should only increment by one level at a time",
			[]string{"headings"},
		),
	}
}

// Apply checks each heading against the level of the previous one.
func (r *HeadingIncrementRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	prevLevel := 0

	for _, heading := range ctx.Headings() {
		level := heading.Block.HeadingLevel
		if prevLevel > 0 && level > prevLevel+1 {
			diags = append(diags, lint.NewDiagnostic(r.ID(), heading, r.Description()).
				WithDetail(expectedActual(fmt.Sprintf("h%d", prevLevel+1), fmt.Sprintf("h%d", level))).
				Build())
		}
		prevLevel = level
	}

	return diags, nil
}

// NoMissingSpaceATXRule flags "#Heading" lines that were meant as headings.
type NoMissingSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMissingSpaceATXRule creates the MD018 rule.
func NewNoMissingSpaceATXRule() *NoMissingSpaceATXRule {
	return &NoMissingSpaceATXRule{
		BaseRule: lint.NewBaseRule(
			"MD018",
			"no-missing-space-atx",
			"No space after hash on atx style heading",
			[]string{"headings", "atx", "spaces"},
		),
	}
}

var missingSpaceATXRe = regexp.MustCompile(`^( {0,3})(#{1,6})[^#\s]`)

// Apply scans non-code lines for a hash run glued to the heading text.
func (r *NoMissingSpaceATXRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for line := 1; line <= ctx.File.LineCount(); line++ {
		if ctx.IsLineInCodeBlock(line) || ctx.IsLineInHTMLBlock(line) {
			continue
		}

		content := ctx.File.LineContent(line)
		prefix := quotePrefixLen(content)

		match := missingSpaceATXRe.FindSubmatchIndex(content[prefix:])
		if match == nil {
			continue
		}

		col := prefix + match[4] + 1
		diags = append(diags, lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, col, match[5]-match[4]+1,
			r.Description()).
			WithDetail(contextDetail(content)).
			WithSuggestion("Insert a space after the hash characters").
			Build())
	}

	return diags, nil
}

// quotePrefixLen returns the length of any leading blockquote markers.
func quotePrefixLen(line []byte) int {
	idx := 0
	for {
		rest := line[idx:]
		trimmed := bytes.TrimLeft(rest, " ")
		if len(rest)-len(trimmed) > 3 || len(trimmed) == 0 || trimmed[0] != '>' {
			return idx
		}
		idx += len(rest) - len(trimmed) + 1
		if idx < len(line) && line[idx] == ' ' {
			idx++
		}
	}
}

// HeadingBlankLinesRule requires blank lines around headings.
type HeadingBlankLinesRule struct {
	lint.BaseRule
}

// NewHeadingBlankLinesRule creates the MD022 rule.
func NewHeadingBlankLinesRule() *HeadingBlankLinesRule {
	return &HeadingBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"MD022",
			"blanks-around-headings",
			"Headings should be surrounded by blank lines",
			[]string{"headings", "blank_lines"},
		),
	}
}

// Apply counts blank lines above and below every heading.
// A negative lines_above or lines_below disables that side.
func (r *HeadingBlankLinesRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	above := ctx.OptionInt("lines_above", 1)
	below := ctx.OptionInt("lines_below", 1)
	total := ctx.File.LineCount()

	var diags []lint.Diagnostic

	for _, heading := range ctx.Headings() {
		start, end := heading.StartLine(), heading.EndLine()
		if start == 0 {
			continue
		}

		if above > 0 && start > 1 {
			count := r.countBlank(ctx, start-1, -1, above)
			if count < above && start-1-count > 0 {
				diags = append(diags, lint.NewDiagnostic(r.ID(), heading, r.Description()).
					WithDetail(expectedActual(above, count)+"; Above").
					Build())
			}
		}

		if below > 0 && end < total {
			count := r.countBlank(ctx, end+1, 1, below)
			if count < below && end+count < total {
				diags = append(diags, lint.NewDiagnostic(r.ID(), heading, r.Description()).
					WithDetail(expectedActual(below, count)+"; Below").
					Build())
			}
		}
	}

	return diags, nil
}

// countBlank counts up to limit consecutive blank lines from line in the
// given direction.
func (r *HeadingBlankLinesRule) countBlank(ctx *lint.RuleContext, line, step, limit int) int {
	count := 0
	for line >= 1 && line <= ctx.File.LineCount() && count < limit {
		if !isBlankQuoted(ctx.File.LineContent(line)) {
			break
		}
		count++
		line += step
	}
	return count
}

// SingleH1Rule allows only one top-level heading per document.
type SingleH1Rule struct {
	lint.BaseRule
}

// NewSingleH1Rule creates the MD025 rule.
func NewSingleH1Rule() *SingleH1Rule {
	return &SingleH1Rule{
		BaseRule: lint.NewBaseRule(
			"MD025",
			"single-h1",
			"Multiple top-level headings in the same document",
			[]string{"headings"},
		),
	}
}

// Apply flags every top-level heading after a leading title heading.
// Documents that do not open with a title are not checked.
func (r *SingleH1Rule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	level := ctx.OptionInt("level", 1)

	first := firstContentBlock(ctx.Root)
	if first == nil || first.Kind != mdast.NodeHeading || first.Block.HeadingLevel != level {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, heading := range ctx.Headings() {
		if heading == first || heading.Block.HeadingLevel != level {
			continue
		}
		diags = append(diags, lint.NewDiagnostic(r.ID(), heading, r.Description()).
			WithDetail(contextDetail(heading.Text())).
			Build())
	}

	return diags, nil
}

// firstContentBlock returns the first top-level block that is not an HTML
// comment.
func firstContentBlock(root *mdast.Node) *mdast.Node {
	if root == nil {
		return nil
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		if child.Kind == mdast.NodeHTMLBlock && bytes.HasPrefix(bytes.TrimSpace(child.Text()), []byte("<!--")) {
			continue
		}
		return child
	}
	return nil
}

// NoTrailingPunctuationRule flags headings ending in punctuation.
type NoTrailingPunctuationRule struct {
	lint.BaseRule
}

// NewNoTrailingPunctuationRule creates the MD026 rule.
func NewNoTrailingPunctuationRule() *NoTrailingPunctuationRule {
	return &NoTrailingPunctuationRule{
		BaseRule: lint.NewBaseRule(
			"MD026",
			"no-trailing-punctuation",
			"Trailing punctuation in heading",
			[]string{"headings"},
		),
	}
}

const defaultHeadingPunctuation = ".,;:!。，；：！"

var entityEndRe = regexp.MustCompile(`&#?[0-9a-zA-Z]+;$`)

// Apply checks the last character of each heading's text.
func (r *NoTrailingPunctuationRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	punctuation := ctx.OptionString("punctuation", defaultHeadingPunctuation)
	if punctuation == "" {
		return nil, nil
	}

	var diags []lint.Diagnostic

	for _, heading := range ctx.Headings() {
		text := strings.TrimSpace(plainText(heading))
		last, _ := utf8.DecodeLastRuneInString(text)
		if text == "" || !strings.ContainsRune(punctuation, last) {
			continue
		}
		if last == ';' && entityEndRe.MatchString(text) {
			continue
		}

		line := heading.StartLine()
		if heading.Block.HeadingStyle == mdast.HeadingSetext {
			line = heading.EndLine() - 1
		}

		col, size := trailingRuneColumn(ctx.File.LineContent(line))
		diags = append(diags, lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, col, size, r.Description()).
			WithDetail("Punctuation: "+strconv.Quote(string(last))).
			WithSuggestion("Remove the trailing punctuation").
			Build())
	}

	return diags, nil
}

// trailingRuneColumn locates the last text rune of a heading line, skipping
// trailing whitespace and an ATX closing sequence.
func trailingRuneColumn(line []byte) (int, int) {
	trimmed := bytes.TrimRight(line, " \t")
	if closed := bytes.TrimRight(trimmed, "#"); len(closed) < len(trimmed) {
		if len(closed) > 0 && (closed[len(closed)-1] == ' ' || closed[len(closed)-1] == '\t') {
			trimmed = bytes.TrimRight(closed, " \t")
		}
	}

	if len(trimmed) == 0 {
		return 1, 0
	}
	_, size := utf8.DecodeLastRune(trimmed)
	return len(trimmed) - size + 1, size
}

// FirstLineHeadingRule requires documents to open with a top-level heading.
type FirstLineHeadingRule struct {
	lint.BaseRule
}

// NewFirstLineHeadingRule creates the MD041 rule.
func NewFirstLineHeadingRule() *FirstLineHeadingRule {
	return &FirstLineHeadingRule{
		BaseRule: lint.NewBaseRule(
			"MD041",
			"first-line-heading",
			"First line in a file should be a top-level heading",
			[]string{"headings"},
		),
	}
}

// Apply inspects the first block that is not an HTML comment.
func (r *FirstLineHeadingRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	level := ctx.OptionInt("level", 1)

	first := firstContentBlock(ctx.Root)
	if first == nil {
		return nil, nil
	}

	switch first.Kind {
	case mdast.NodeHeading:
		if first.Block.HeadingLevel == level {
			return nil, nil
		}
	case mdast.NodeHTMLBlock:
		tag := regexp.MustCompile(`(?i)^\s*<h` + strconv.Itoa(level) + `[\s>]`)
		if tag.Match(first.Text()) {
			return nil, nil
		}
	}

	line := max(first.StartLine(), 1)
	return []lint.Diagnostic{
		lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, 1, 0, r.Description()).
			WithDetail(contextDetail(ctx.File.LineContent(line))).
			Build(),
	}, nil
}
