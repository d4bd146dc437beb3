package nested

import (
	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/lint"
)

// Range locates a violation within its line.
type Range struct {
	Column int
	Length int
}

// Violation is one rule failure against a block's isolated content.
type Violation struct {
	// RuleNames holds the rule ID followed by its name, e.g. MD009 and
	// no-trailing-spaces.
	RuleNames []string

	Description string
	Detail      string
	Suggestion  string

	// Line is 1-based and relative to the block content.
	Line int

	// Range is nil when the rule reported no column.
	Range *Range

	Severity config.Severity
}

// Column returns the 1-based start column, defaulting to 1.
func (v Violation) Column() int {
	if v.Range == nil || v.Range.Column < 1 {
		return 1
	}
	return v.Range.Column
}

// RuleID returns the primary rule identifier.
func (v Violation) RuleID() string {
	if len(v.RuleNames) == 0 {
		return ""
	}
	return v.RuleNames[0]
}

func newViolation(diag lint.Diagnostic) Violation {
	v := Violation{
		RuleNames:   []string{diag.RuleID},
		Description: diag.Message,
		Detail:      diag.Detail,
		Suggestion:  diag.Suggestion,
		Line:        diag.StartLine,
		Severity:    diag.Severity,
	}

	if diag.RuleName != "" {
		v.RuleNames = append(v.RuleNames, diag.RuleName)
	}
	if diag.StartColumn > 0 {
		v.Range = &Range{Column: diag.StartColumn, Length: diag.RangeLength()}
	}

	return v
}
