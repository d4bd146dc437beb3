package mdast

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// NoSpan is the range assigned to nodes the parser could not place.
//
//nolint:gochecknoglobals // immutable sentinel value
var NoSpan = SourceRange{StartOffset: -1, EndOffset: -1}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition represents a range in terms of line/column positions.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if both start and end positions are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.Start().IsValid() && sp.End().IsValid()
}

// SourcePosition returns the line/column range covered by the node.
// The end column is exclusive. Unplaced nodes yield an invalid position.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil || !n.Placed() {
		return SourcePosition{}
	}

	startLine, startCol := n.File.LineAt(n.Span.StartOffset)
	endLine, endCol := n.File.LineAt(n.Span.EndOffset)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// StartLine returns the 1-based line on which the node begins, or 0.
func (n *Node) StartLine() int {
	return n.SourcePosition().StartLine
}

// EndLine returns the 1-based line on which the node ends, or 0.
// A span ending exactly at a line start is attributed to the previous line.
func (n *Node) EndLine() int {
	if n.File == nil || !n.Placed() {
		return 0
	}

	end := n.Span.EndOffset
	if end > n.Span.StartOffset {
		end--
	}

	line, _ := n.File.LineAt(end)
	return line
}

// Text returns the source bytes covered by the node.
// Returns nil if the node is not placed in a file.
func (n *Node) Text() []byte {
	if n.File == nil || !n.Placed() || n.Span.EndOffset > len(n.File.Content) {
		return nil
	}

	return n.File.Content[n.Span.StartOffset:n.Span.EndOffset]
}
