// Package pretty provides Lipgloss-based styled output for the text report.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the renderers used by the text report.
type Styles struct {
	// Severity
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Report sections
	Title       lipgloss.Style
	FilePath    lipgloss.Style
	FenceHeader lipgloss.Style
	Depth       lipgloss.Style

	// Violation components
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Detail     lipgloss.Style
	Suggestion lipgloss.Style

	// Verdict
	Success lipgloss.Style
	Failure lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates Styles, coloured or plain.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),

		Title:       lipgloss.NewStyle().Bold(true),
		FilePath:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		FenceHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Depth:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		Location:   lipgloss.NewStyle(),
		RuleID:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Message:    lipgloss.NewStyle(),
		Detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Italic(true),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:       plain,
		Warning:     plain,
		Info:        plain,
		Title:       plain,
		FilePath:    plain,
		FenceHeader: plain,
		Depth:       plain,
		Location:    plain,
		RuleID:      plain,
		Message:     plain,
		Detail:      plain,
		Suggestion:  plain,
		Success:     plain,
		Failure:     plain,
		Dim:         plain,
		Bold:        plain,
	}
}

// IsColorEnabled decides whether to colour output for mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
