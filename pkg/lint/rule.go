// Package lint provides the rule engine, diagnostics and registry used to
// check Markdown documents, whether they come from disk or from a fence body.
package lint

import (
	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/mdast"
)

// Diagnostic represents a single lint issue found in a document.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "no-trailing-spaces").
	RuleName string

	// Message is the rule description or a more specific problem statement.
	Message string

	// Detail carries supplementary context such as "Expected: 1; Actual: 3".
	Detail string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the document containing the issue.
	FilePath string

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based column number where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based, exclusive column where the issue ends.
	EndColumn int

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string
}

// SourcePosition returns the diagnostic position as a SourcePosition.
func (d *Diagnostic) SourcePosition() mdast.SourcePosition {
	return mdast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// RangeLength returns the number of columns covered on the start line, or 0
// when the diagnostic spans lines or has no column information.
func (d *Diagnostic) RangeLength() int {
	if d.EndLine != d.StartLine || d.EndColumn <= d.StartColumn {
		return 0
	}
	return d.EndColumn - d.StartColumn
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "MD001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a short description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["headings"]).
	Tags() []string

	// Apply executes the rule against the given context and returns diagnostics.
	//
	// Rules must respect context cancellation and return an error only for
	// internal failures, never for violations.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
