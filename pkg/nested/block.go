// Package nested finds Markdown written inside ```markdown and ```md fences,
// follows it down through any further Markdown fences it contains, and maps
// lines reported against an extracted block back to the file it came from.
//
// Extraction is a pure function of the document text: the same input always
// yields the same blocks in the same depth-first order, and an Extractor may
// be shared between goroutines.
package nested

import "strings"

// Block is one Markdown fence body found at any nesting depth.
// Blocks are values and are never modified after extraction.
type Block struct {
	// Content is the verbatim fence body, container indentation removed.
	Content string

	// RootLine is the line, in the checked file, of the block's opening fence.
	RootLine int

	// Depth is 0 for fences written directly in the file and N+1 for fences
	// found inside a depth-N block.
	Depth int

	// AncestryPath is a breadcrumb such as "line 9 > block at line 24".
	AncestryPath string

	// LanguageTag is the normalised info string: "markdown" or "md".
	LanguageTag string

	// Info is the info string as written, for display.
	Info string
}

// IsBlank reports whether the block holds only whitespace. Blank blocks are
// neither searched for children nor checked.
func (b Block) IsBlank() bool {
	return strings.TrimSpace(b.Content) == ""
}

// LineCount returns the number of content lines.
func (b Block) LineCount() int {
	if b.Content == "" {
		return 0
	}
	n := strings.Count(b.Content, "\n")
	if !strings.HasSuffix(b.Content, "\n") {
		n++
	}
	return n
}

// FirstContentLine returns the file line holding the first line of Content.
func (b Block) FirstContentLine() int {
	return AbsoluteLine(b.RootLine, 1)
}
