package rules

import (
	"bytes"
	"regexp"
	"unicode/utf8"

	"github.com/yaklabco/gomdnest/pkg/lint"
)

// MaxLineLengthRule limits line length, with separate limits for headings
// and code blocks.
type MaxLineLengthRule struct {
	lint.BaseRule
}

// NewMaxLineLengthRule creates the MD013 rule.
func NewMaxLineLengthRule() *MaxLineLengthRule {
	return &MaxLineLengthRule{
		BaseRule: lint.NewBaseRule(
			"MD013",
			"line-length",
			"Line length",
			[]string{"line_length"},
		),
	}
}

var (
	linkRefDefRe = regexp.MustCompile(`^\s*\[[^\]]+\]:\s*\S+(\s+("[^"]*"|'[^']*'|\([^)]*\)))?\s*$`)
	tableRowRe   = regexp.MustCompile(`^\s*\|`)
)

// Apply measures each line in runes. Unless strict is set, a line is only
// reported when whitespace occurs after the limit, so a single long word or
// URL that cannot be wrapped is tolerated.
func (r *MaxLineLengthRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	limit := ctx.OptionInt("line_length", 80)
	headingLimit := ctx.OptionInt("heading_line_length", limit)
	codeLimit := ctx.OptionInt("code_block_line_length", limit)
	checkCode := ctx.OptionBool("code_blocks", true)
	checkHeadings := ctx.OptionBool("headings", true)
	checkTables := ctx.OptionBool("tables", true)
	strict := ctx.OptionBool("strict", false)

	headingLines := make(map[int]bool)
	for _, heading := range ctx.Headings() {
		for line := heading.StartLine(); line > 0 && line <= heading.EndLine(); line++ {
			headingLines[line] = true
		}
	}

	var diags []lint.Diagnostic

	for line := 1; line <= ctx.File.LineCount(); line++ {
		content := ctx.File.LineContent(line)
		lineLimit := limit

		switch {
		case ctx.IsLineInCodeBlock(line):
			if !checkCode {
				continue
			}
			lineLimit = codeLimit
		case headingLines[line]:
			if !checkHeadings {
				continue
			}
			lineLimit = headingLimit
		case !checkTables && tableRowRe.Match(content):
			continue
		case linkRefDefRe.Match(content):
			continue
		}

		length := utf8.RuneCount(content)
		if length <= lineLimit {
			continue
		}
		if !strict && !wrappableAfter(content, lineLimit) {
			continue
		}

		col := byteOffsetOfRune(content, lineLimit) + 1
		diags = append(diags, lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, col, len(content)-col+1,
			r.Description()).
			WithDetail(expectedActual(lineLimit, length)).
			Build())
	}

	return diags, nil
}

// wrappableAfter reports whether whitespace follows rune index limit.
func wrappableAfter(line []byte, limit int) bool {
	return bytes.ContainsAny(line[byteOffsetOfRune(line, limit):], " \t")
}

func byteOffsetOfRune(line []byte, runes int) int {
	offset := 0
	for range runes {
		if offset >= len(line) {
			break
		}
		_, size := utf8.DecodeRune(line[offset:])
		offset += size
	}
	return offset
}
