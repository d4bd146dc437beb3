package mdast

import (
	"bytes"
	"sort"
)

// BuildLines constructs line metadata from content.
// LF and CRLF line endings are both recognised. Content ending in a newline
// yields a final empty line, mirroring how editors number lines.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	start := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		nl := idx
		if idx > start && content[idx-1] == '\r' {
			nl = idx - 1
		}

		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: nl, EndOffset: idx + 1})
		start = idx + 1
	}

	return append(lines, LineInfo{
		StartOffset:  start,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})
}

// LineCount returns the number of lines in the document.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes. Returns (0, 0) for negative offsets.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(f.Content) {
		last := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - last.StartOffset + 1
	}

	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}

	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (0, false) if the position lies outside the document.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}

	info := f.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the bytes of a 1-based line, excluding the newline.
// Returns nil if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}

// IsBlankLine reports whether a 1-based line holds only spaces and tabs.
func (f *FileSnapshot) IsBlankLine(line int) bool {
	return len(bytes.Trim(f.LineContent(line), " \t")) == 0
}
