package nested

import "strconv"

// Line numbers follow one convention throughout the package: a block's
// RootLine is its opening fence line, and a line reported against the block's
// content counts from 1 at the first line after that fence. A content line L
// therefore sits at RootLine + L in the file.

// ChildRootLine returns the file line of a fence found at fenceLine (1-based)
// inside a document whose first line sits just below file line offset.
// For the file itself offset is 0; for a block's content it is the block's
// RootLine.
func ChildRootLine(offset, fenceLine int) int {
	return offset + fenceLine
}

// AbsoluteLine maps a content-relative line of a block to the file line.
func AbsoluteLine(rootLine, relLine int) int {
	return rootLine + relLine
}

// AncestryPath extends a parent breadcrumb with a block at rootLine.
func AncestryPath(parent string, rootLine int) string {
	if parent == "" {
		return "line " + strconv.Itoa(rootLine)
	}
	return parent + " > block at line " + strconv.Itoa(rootLine)
}
