package lint

import (
	"context"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/mdast"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// RuleContext stores context.Context as a field because it is a short-lived
// parameter object created per rule invocation.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed FileSnapshot.
	File *mdast.FileSnapshot

	// Root is the AST root node (convenience alias for File.Root).
	Root *mdast.Node

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	nodes *nodeIndex
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	file *mdast.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *mdast.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
// JSON numbers arrive as float64 and YAML numbers as int; both are accepted.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	switch val := rc.Option(key, defaultValue).(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	if s, ok := rc.Option(key, defaultValue).(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	if b, ok := rc.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	switch v := rc.Option(key, defaultValue).(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return defaultValue
	}
}

// Headings returns all heading nodes in document order.
// The returned slice is shared between rules and must not be modified.
func (rc *RuleContext) Headings() []*mdast.Node { return rc.index().headings }

// CodeBlocks returns all fenced and indented code blocks.
func (rc *RuleContext) CodeBlocks() []*mdast.Node { return rc.index().codeBlocks }

// Links returns all link nodes, including autolinks.
func (rc *RuleContext) Links() []*mdast.Node { return rc.index().links }

// HTMLNodes returns all HTML blocks and inline HTML nodes.
func (rc *RuleContext) HTMLNodes() []*mdast.Node { return rc.index().html }

// IsLineInCodeBlock reports whether a 1-based line belongs to a code block,
// fence lines included.
func (rc *RuleContext) IsLineInCodeBlock(line int) bool {
	return rc.index().codeLines[line]
}

// IsCodeContentLine reports whether a 1-based line is the body of a code
// block (fence lines excluded).
func (rc *RuleContext) IsCodeContentLine(line int) bool {
	return rc.index().codeBodyLines[line]
}

// IsLineInHTMLBlock reports whether a 1-based line belongs to an HTML block.
func (rc *RuleContext) IsLineInHTMLBlock(line int) bool {
	return rc.index().htmlLines[line]
}

func (rc *RuleContext) index() *nodeIndex {
	if rc.nodes == nil {
		rc.nodes = buildNodeIndex(rc.Root)
	}
	return rc.nodes
}

// nodeIndex caches node collections so each rule does not re-walk the tree.
type nodeIndex struct {
	headings   []*mdast.Node
	codeBlocks []*mdast.Node
	links      []*mdast.Node
	html       []*mdast.Node

	codeLines     map[int]bool
	codeBodyLines map[int]bool
	htmlLines     map[int]bool
}

func buildNodeIndex(root *mdast.Node) *nodeIndex {
	idx := &nodeIndex{
		codeLines:     make(map[int]bool),
		codeBodyLines: make(map[int]bool),
		htmlLines:     make(map[int]bool),
	}

	//nolint:errcheck // callback never fails
	mdast.Walk(root, func(n *mdast.Node) error {
		switch n.Kind {
		case mdast.NodeHeading:
			idx.headings = append(idx.headings, n)
		case mdast.NodeCodeBlock:
			idx.codeBlocks = append(idx.codeBlocks, n)
			idx.markCode(n)
		case mdast.NodeLink:
			idx.links = append(idx.links, n)
		case mdast.NodeHTMLBlock:
			idx.html = append(idx.html, n)
			markLines(idx.htmlLines, n.StartLine(), n.EndLine())
		case mdast.NodeHTMLInline:
			idx.html = append(idx.html, n)
		}
		return nil
	})

	return idx
}

func (idx *nodeIndex) markCode(n *mdast.Node) {
	start, end := n.StartLine(), n.EndLine()
	if start == 0 {
		return
	}
	markLines(idx.codeLines, start, end)

	attrs := n.Block.CodeBlock
	if attrs.Indented {
		markLines(idx.codeBodyLines, start, end)
		return
	}
	markLines(idx.codeBodyLines, start+1, start+attrs.ContentLines)
}

func markLines(set map[int]bool, from, to int) {
	for line := from; line > 0 && line <= to; line++ {
		set[line] = true
	}
}
