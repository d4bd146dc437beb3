package lint

import "github.com/yaklabco/gomdnest/pkg/mdast"

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic located at a node.
func NewDiagnostic(ruleID string, node *mdast.Node, message string) *DiagnosticBuilder {
	var filePath string
	var pos mdast.SourcePosition

	if node != nil {
		pos = node.SourcePosition()
		if node.File != nil {
			filePath = node.File.Path
		}
	}

	return NewDiagnosticAt(ruleID, filePath, pos, message)
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
func NewDiagnosticAt(ruleID, filePath string, pos mdast.SourcePosition, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// NewLineDiagnostic starts building a diagnostic covering length columns of
// a single line starting at column.
func NewLineDiagnostic(ruleID, filePath string, line, column, length int, message string) *DiagnosticBuilder {
	return NewDiagnosticAt(ruleID, filePath, mdast.SourcePosition{
		StartLine:   line,
		StartColumn: column,
		EndLine:     line,
		EndColumn:   column + length,
	}, message)
}

// WithDetail sets the supplementary detail text.
func (b *DiagnosticBuilder) WithDetail(detail string) *DiagnosticBuilder {
	b.diag.Detail = detail
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
