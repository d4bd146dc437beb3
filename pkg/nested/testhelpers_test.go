package nested_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gomdnest/pkg/nested"
	"github.com/yaklabco/gomdnest/pkg/parser/goldmark"
)

func newExtractor(opts ...nested.ExtractorOption) *nested.Extractor {
	return nested.NewExtractor(goldmark.New(goldmark.FlavorGFM), opts...)
}

// doc joins lines with newlines and adds a trailing newline.
func doc(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func rootLines(t *testing.T, blocks []nested.Block) []int {
	t.Helper()
	out := make([]int, len(blocks))
	for i, b := range blocks {
		out[i] = b.RootLine
	}
	return out
}
