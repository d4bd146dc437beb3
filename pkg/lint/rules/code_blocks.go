package rules

import (
	"slices"
	"strings"

	"github.com/yaklabco/gomdnest/pkg/langdetect"
	"github.com/yaklabco/gomdnest/pkg/lint"
	"github.com/yaklabco/gomdnest/pkg/mdast"
)

// BlanksAroundFencesRule requires blank lines around fenced code blocks.
type BlanksAroundFencesRule struct {
	lint.BaseRule
}

// NewBlanksAroundFencesRule creates the MD031 rule.
func NewBlanksAroundFencesRule() *BlanksAroundFencesRule {
	return &BlanksAroundFencesRule{
		BaseRule: lint.NewBaseRule(
			"MD031",
			"blanks-around-fences",
			"Fenced code blocks should be surrounded by blank lines",
			[]string{"code", "blank_lines"},
		),
	}
}

// Apply checks the line before the opening fence and after the closing one.
// Fences at the very start or end of the document need no blank line.
func (r *BlanksAroundFencesRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	listItems := ctx.OptionBool("list_items", true)
	total := ctx.File.LineCount()

	var diags []lint.Diagnostic

	for _, block := range ctx.CodeBlocks() {
		attrs := block.Block.CodeBlock
		if attrs.Indented || (!listItems && hasAncestor(block, mdast.NodeListItem)) {
			continue
		}

		open := block.StartLine()
		if open == 0 {
			continue
		}

		if open > 1 && !isBlankQuoted(ctx.File.LineContent(open-1)) {
			diags = append(diags, r.fenceDiagnostic(ctx, open))
		}

		if !attrs.Closed {
			continue
		}
		closing := open + attrs.ContentLines + 1
		if closing < total && !isBlankQuoted(ctx.File.LineContent(closing+1)) {
			diags = append(diags, r.fenceDiagnostic(ctx, closing))
		}
	}

	return diags, nil
}

func (r *BlanksAroundFencesRule) fenceDiagnostic(ctx *lint.RuleContext, line int) lint.Diagnostic {
	content := ctx.File.LineContent(line)
	return lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, 1, len(content), r.Description()).
		WithDetail(contextDetail(content)).
		WithSuggestion("Add a blank line around the fence").
		Build()
}

// CodeBlockLanguageRule requires a language on fenced code blocks.
type CodeBlockLanguageRule struct {
	lint.BaseRule
}

// NewCodeBlockLanguageRule creates the MD040 rule.
func NewCodeBlockLanguageRule() *CodeBlockLanguageRule {
	return &CodeBlockLanguageRule{
		BaseRule: lint.NewBaseRule(
			"MD040",
			"fenced-code-language",
			"Fenced code blocks should have a language specified",
			[]string{"code", "language"},
		),
	}
}

// Apply checks fence info strings. An empty info string gets a suggested
// language from the block body; allowed_languages restricts the accepted
// tags and language_only forbids anything after the tag.
func (r *CodeBlockLanguageRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	allowed := ctx.OptionStringSlice("allowed_languages", nil)
	languageOnly := ctx.OptionBool("language_only", false)

	var diags []lint.Diagnostic

	for _, block := range ctx.CodeBlocks() {
		attrs := block.Block.CodeBlock
		if attrs.Indented || block.StartLine() == 0 {
			continue
		}

		info := strings.TrimSpace(attrs.Info)
		line := block.StartLine()
		content := ctx.File.LineContent(line)

		if info == "" {
			diags = append(diags, r.missingLanguage(ctx, line, content, attrs.Content))
			continue
		}

		fields := strings.Fields(info)
		language := fields[0]

		if len(allowed) > 0 && !slices.Contains(allowed, language) {
			diags = append(diags, lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, 1, len(content),
				r.Description()).
				WithDetail(`"`+language+`" is not allowed`).
				Build())
			continue
		}

		if languageOnly && len(fields) > 1 {
			diags = append(diags, lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, 1, len(content),
				r.Description()).
				WithDetail("Info string contains more than language: "+`"`+info+`"`).
				Build())
		}
	}

	return diags, nil
}

func (r *CodeBlockLanguageRule) missingLanguage(
	ctx *lint.RuleContext,
	line int,
	fenceLine, body []byte,
) lint.Diagnostic {
	builder := lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, 1, len(fenceLine), r.Description()).
		WithDetail(contextDetail(fenceLine))

	if lang := langdetect.Detect(body); lang != langdetect.Text {
		builder.WithSuggestion("Add a language tag such as " + `"` + lang + `"`)
	}
	if langdetect.LooksLikeMarkdown(body) {
		builder.WithDetail("Untagged fence looks like Markdown; tag it \"markdown\" to have it checked")
	}

	return builder.Build()
}
