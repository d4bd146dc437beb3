package nested

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/lint"
)

// DefaultMaxDepth is the deepest block depth extracted before a file is
// rejected as runaway recursion.
const DefaultMaxDepth = config.DefaultMaxDepth

// ErrRunawayRecursion reports nesting deeper than the extractor allows.
var ErrRunawayRecursion = errors.New("runaway recursion in nested markdown")

// Extractor walks a document and every Markdown fence inside it.
type Extractor struct {
	parser   lint.Parser
	maxDepth int
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMaxDepth sets the deepest accepted block depth. Values below 1 keep
// the default.
func WithMaxDepth(depth int) ExtractorOption {
	return func(e *Extractor) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// NewExtractor creates an Extractor that parses with parser.
func NewExtractor(parser lint.Parser, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		parser:   parser,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDepth returns the deepest accepted block depth.
func (e *Extractor) MaxDepth() int {
	return e.maxDepth
}

// Extract returns every Markdown block reachable from content, parents
// before their descendants. path is only used to label parser errors.
//
// A block deeper than MaxDepth aborts extraction for the whole file with an
// error wrapping ErrRunawayRecursion; no partial list is returned.
func (e *Extractor) Extract(ctx context.Context, path string, content []byte) ([]Block, error) {
	return e.extract(ctx, path, content, 0, 0, "")
}

func (e *Extractor) extract(
	ctx context.Context,
	path string,
	content []byte,
	offset, depth int,
	parent string,
) ([]Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction cancelled: %w", err)
	}

	snapshot, err := e.parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s at depth %d: %w", path, depth, err)
	}

	var blocks []Block

	for _, fence := range Locate(snapshot) {
		rootLine := ChildRootLine(offset, fence.Line)
		block := Block{
			Content:      string(fence.Content),
			RootLine:     rootLine,
			Depth:        depth,
			AncestryPath: AncestryPath(parent, rootLine),
			LanguageTag:  fence.Tag,
			Info:         fence.Info,
		}

		if depth > e.maxDepth {
			return nil, fmt.Errorf("%w: depth %d exceeds %d at %s",
				ErrRunawayRecursion, depth, e.maxDepth, block.AncestryPath)
		}

		blocks = append(blocks, block)
		if block.IsBlank() {
			continue
		}

		children, err := e.extract(ctx, path, fence.Content, rootLine, depth+1, block.AncestryPath)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, children...)
	}

	return blocks, nil
}
