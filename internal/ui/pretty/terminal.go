package pretty

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	defaultTermWidth = 80
	maxDividerWidth  = 72
)

// TerminalWidth returns the width of w when it is a terminal, or a default.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

// Divider returns a rule line fitted to width.
func (s *Styles) Divider(width int) string {
	if width <= 0 || width > maxDividerWidth {
		width = maxDividerWidth
	}
	return s.Dim.Render(strings.Repeat("─", width))
}
