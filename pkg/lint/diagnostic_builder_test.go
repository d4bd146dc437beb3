package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdnest/pkg/lint"
	"github.com/yaklabco/gomdnest/pkg/mdast"
)

func TestNewDiagnostic(t *testing.T) {
	t.Parallel()

	file := mdast.NewFileSnapshot("doc.md", []byte("Intro\n\n# Hello\n"))
	node := mdast.NewNode(mdast.NodeHeading)
	node.File = file
	mdast.SetSpan(node, 7, 14)

	diag := lint.NewDiagnostic("MD001", node, "Heading levels").
		WithDetail("Expected: h2; Actual: h3").
		WithSuggestion("Use h2").
		Build()

	assert.Equal(t, "MD001", diag.RuleID)
	assert.Equal(t, "Heading levels", diag.Message)
	assert.Equal(t, "doc.md", diag.FilePath)
	assert.Equal(t, 3, diag.StartLine)
	assert.Equal(t, 1, diag.StartColumn)
	assert.Equal(t, "Expected: h2; Actual: h3", diag.Detail)
	assert.Equal(t, "Use h2", diag.Suggestion)
}

func TestNewDiagnostic_NilNode(t *testing.T) {
	t.Parallel()

	diag := lint.NewDiagnostic("MD001", nil, "message").Build()

	assert.Equal(t, "MD001", diag.RuleID)
	assert.Empty(t, diag.FilePath)
	assert.Zero(t, diag.StartLine)
}

func TestNewLineDiagnostic(t *testing.T) {
	t.Parallel()

	diag := lint.NewLineDiagnostic("MD009", "doc.md", 4, 6, 2, "Trailing spaces").Build()

	assert.Equal(t, 4, diag.StartLine)
	assert.Equal(t, 4, diag.EndLine)
	assert.Equal(t, 6, diag.StartColumn)
	assert.Equal(t, 8, diag.EndColumn)
}
