package rules

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"github.com/yaklabco/gomdnest/pkg/mdast"
)

// expectedActual formats the detail string markdownlint uses for
// count-based violations.
func expectedActual(expected, actual any) string {
	return "Expected: " + toString(expected) + "; Actual: " + toString(actual)
}

func toString(v any) string {
	switch val := v.(type) {
	case int:
		return strconv.Itoa(val)
	case string:
		return val
	default:
		return ""
	}
}

// contextDetail formats a quoted source excerpt for a diagnostic detail.
func contextDetail(text []byte) string {
	const maxContext = 30

	s := strings.TrimSpace(string(text))
	if r := []rune(s); len(r) > maxContext {
		s = string(r[:maxContext-3]) + "..."
	}
	return "Context: " + strconv.Quote(s)
}

// isBlankQuoted reports whether a line is blank once any blockquote markers
// are removed, so "> " separates blocks the way an empty line does.
func isBlankQuoted(line []byte) bool {
	return len(bytes.Trim(line, " \t>")) == 0
}

// hasAncestor reports whether any ancestor of n has the given kind.
func hasAncestor(n *mdast.Node, kind mdast.NodeKind) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return true
		}
	}
	return false
}

// plainText concatenates the text content under n, ignoring markup.
func plainText(n *mdast.Node) string {
	var buf strings.Builder

	//nolint:errcheck // callback never fails
	mdast.Walk(n, func(child *mdast.Node) error {
		switch child.Kind {
		case mdast.NodeText:
			if child.Inline != nil {
				buf.Write(child.Inline.Text)
			}
		case mdast.NodeCodeSpan:
			if child.Inline != nil {
				buf.Write(child.Inline.Text)
			}
			return mdast.SkipChildren
		case mdast.NodeSoftBreak, mdast.NodeHardBreak:
			buf.WriteByte(' ')
		}
		return nil
	})

	return buf.String()
}

// headingSlug converts heading text to a GitHub-style anchor: lowercase,
// punctuation removed, spaces turned into hyphens.
func headingSlug(text string) string {
	var buf strings.Builder

	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case r == ' ':
			buf.WriteByte('-')
		case r == '-' || r == '_':
			buf.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.M, r):
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// anchorSet collects heading anchors, suffixing duplicates the way GitHub
// does ("intro", "intro-1", "intro-2").
type anchorSet struct {
	seen    map[string]int
	anchors map[string]bool
}

func newAnchorSet() *anchorSet {
	return &anchorSet{
		seen:    make(map[string]int),
		anchors: make(map[string]bool),
	}
}

func (s *anchorSet) addHeading(text string) {
	slug := headingSlug(text)
	count := s.seen[slug]
	s.seen[slug] = count + 1

	if count > 0 {
		slug += "-" + strconv.Itoa(count)
	}
	s.anchors[slug] = true
}

func (s *anchorSet) add(anchor string) {
	s.anchors[anchor] = true
}

// lookup returns the matching anchor and whether it matched exactly.
func (s *anchorSet) lookup(fragment string, ignoreCase bool) (string, bool) {
	if s.anchors[fragment] {
		return fragment, true
	}

	for anchor := range s.anchors {
		if strings.EqualFold(anchor, fragment) {
			return anchor, ignoreCase
		}
	}

	return "", false
}
