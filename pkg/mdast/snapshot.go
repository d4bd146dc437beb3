// Package mdast provides the Markdown document model shared by the parser and
// the rule engine. A FileSnapshot holds the raw bytes of one document, its line
// index and the block/inline node tree with byte spans into those bytes.
package mdast

// FileSnapshot is an immutable view of one Markdown document.
//
// Nested documents extracted from code fences get their own snapshot; line
// numbers reported against a snapshot are always relative to its Content.
type FileSnapshot struct {
	// Path is the logical file path (may be empty for in-memory content).
	Path string

	// Content is the full document bytes.
	Content []byte

	// Lines contains metadata for each line in the document.
	Lines []LineInfo

	// Root is the AST root node (Document).
	Root *Node
}

// LineInfo holds metadata for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of content).
	EndOffset int
}

// NewFileSnapshot creates a FileSnapshot with its line index built.
// The node tree is left empty; a parser fills it in.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
