package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/nested"
)

const (
	markPass = "✓"
	markFail = "✗"
	markWarn = "!"
)

// FormatFenceHeader describes a block in the issues section:
//
//	Code fence at line 12 [depth 1] (md block #3) (line 4 > block at line 12):
//
// The depth is only shown for nested blocks. The ancestry is always shown.
func (s *Styles) FormatFenceHeader(res nested.BlockResult) string {
	block := res.Block

	var builder strings.Builder
	builder.WriteString(s.FenceHeader.Render(fmt.Sprintf("Code fence at line %d", block.RootLine)))
	if block.Depth > 0 {
		builder.WriteString(" " + s.Depth.Render(fmt.Sprintf("[depth %d]", block.Depth)))
	}
	builder.WriteString(s.FenceHeader.Render(fmt.Sprintf(" (%s block #%d)", block.LanguageTag, res.Index)))
	builder.WriteString(s.Dim.Render(" (" + block.AncestryPath + ")"))
	builder.WriteString(s.FenceHeader.Render(":"))

	return builder.String()
}

// FormatViolation renders one violation at its file line, followed by its
// detail and suggestion lines when present. indent prefixes the main line;
// continuation lines get two more spaces.
func (s *Styles) FormatViolation(res nested.BlockResult, v nested.Violation, indent string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%d:%d", res.AbsoluteLine(v), v.Column())
	if res.Block.Depth > 0 {
		location += s.Dim.Render(fmt.Sprintf(" (nested line %d)", v.Line))
	}

	builder.WriteString(fmt.Sprintf("%s%s %s %s\n",
		indent,
		s.Location.Render(location),
		s.FormatSeverity(v.Severity, strings.Join(v.RuleNames, "/")),
		s.Message.Render(v.Description),
	))

	if v.Detail != "" {
		builder.WriteString(indent + "  " + s.Detail.Render(v.Detail) + "\n")
	}
	if v.Suggestion != "" {
		builder.WriteString(indent + "  " + s.Dim.Render("Suggestion:") + " " + s.Suggestion.Render(v.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity colours text by severity. Unknown severities use the error
// colour, which is how rule names are shown by default.
func (s *Styles) FormatSeverity(sev config.Severity, text string) string {
	switch sev {
	case config.SeverityWarning:
		return s.Warning.Render(text)
	case config.SeverityInfo:
		return s.Info.Render(text)
	default:
		return s.RuleID.Render(text)
	}
}

// FormatInternalError renders a checker or file failure.
func (s *Styles) FormatInternalError(err error, indent string) string {
	return indent + s.Error.Render(err.Error()) + "\n"
}

// FormatVerdict renders the closing pass/fail line.
func (s *Styles) FormatVerdict(verdict nested.Verdict, internalErrors int) string {
	switch {
	case !verdict.Passed():
		return s.Failure.Render(markFail) + " " + s.Failure.Render("Nested Markdown linting failed")
	case internalErrors > 0:
		return s.Warning.Render(markWarn) + " " +
			s.Warning.Render(fmt.Sprintf("Nested Markdown linting incomplete: %d internal %s",
				internalErrors, Plural(internalErrors, "error", "errors")))
	default:
		return s.Success.Render(markPass) + " " + s.Success.Render("Nested Markdown linting passed")
	}
}

// FormatNoIssues renders the line shown when nothing was reported.
func (s *Styles) FormatNoIssues() string {
	return s.Success.Render(markPass) + " No issues found in nested Markdown code fences"
}

// Plural picks the singular or plural word for n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
