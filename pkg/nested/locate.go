package nested

import (
	"slices"
	"strings"

	"github.com/yaklabco/gomdnest/pkg/mdast"
)

// Fence is a Markdown-tagged fenced code block in one parsed document.
type Fence struct {
	// Tag is the normalised info string ("markdown" or "md").
	Tag string

	// Info is the info string as written.
	Info string

	// Content is the fence body.
	Content []byte

	// Line is the 1-based line of the opening fence in the parsed text.
	Line int
}

//nolint:gochecknoglobals // read-only lookup table
var markdownTags = []string{"markdown", "md"}

// IsMarkdownTag reports whether a fence info string names Markdown. The info
// string must be exactly "markdown" or "md" once trimmed and lowercased, so
// "markdown title=x" does not qualify.
func IsMarkdownTag(info string) bool {
	return slices.Contains(markdownTags, strings.ToLower(strings.TrimSpace(info)))
}

// Locate returns the Markdown-tagged fences of a parsed document in document
// order, including fences inside lists and blockquotes. Fence bodies are not
// searched; the Extractor re-parses them. Repeated fences are all returned.
func Locate(snapshot *mdast.FileSnapshot) []Fence {
	if snapshot == nil || snapshot.Root == nil {
		return nil
	}

	var fences []Fence

	//nolint:errcheck // callback never fails
	mdast.Walk(snapshot.Root, func(n *mdast.Node) error {
		if n.Kind != mdast.NodeCodeBlock {
			return nil
		}

		attrs := n.Block.CodeBlock
		if attrs == nil || attrs.Indented || !IsMarkdownTag(attrs.Info) {
			return mdast.SkipChildren
		}

		line := n.StartLine()
		if line == 0 {
			return mdast.SkipChildren
		}

		fences = append(fences, Fence{
			Tag:     strings.ToLower(strings.TrimSpace(attrs.Info)),
			Info:    strings.TrimSpace(attrs.Info),
			Content: attrs.Content,
			Line:    line,
		})
		return mdast.SkipChildren
	})

	return fences
}
