package mdast_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/gomdnest/pkg/mdast"
)

func buildTestTree() *mdast.Node {
	// Document
	//   Heading
	//     Text
	//   Blockquote
	//     CodeBlock
	//   Paragraph
	//     Link
	//       Text
	doc := mdast.NewDocument()

	heading := mdast.NewNode(mdast.NodeHeading)
	mdast.AppendChild(heading, mdast.NewNode(mdast.NodeText))
	mdast.AppendChild(doc, heading)

	quote := mdast.NewNode(mdast.NodeBlockquote)
	mdast.AppendChild(quote, mdast.NewNode(mdast.NodeCodeBlock))
	mdast.AppendChild(doc, quote)

	para := mdast.NewNode(mdast.NodeParagraph)
	link := mdast.NewNode(mdast.NodeLink)
	mdast.AppendChild(link, mdast.NewNode(mdast.NodeText))
	mdast.AppendChild(para, link)
	mdast.AppendChild(doc, para)

	return doc
}

func collectKinds(t *testing.T, root *mdast.Node, fn func(n *mdast.Node) error) []mdast.NodeKind {
	t.Helper()

	var visited []mdast.NodeKind
	err := mdast.Walk(root, func(n *mdast.Node) error {
		visited = append(visited, n.Kind)
		return fn(n)
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	return visited
}

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	visited := collectKinds(t, buildTestTree(), func(*mdast.Node) error { return nil })

	expected := []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeading,
		mdast.NodeText,
		mdast.NodeBlockquote,
		mdast.NodeCodeBlock,
		mdast.NodeParagraph,
		mdast.NodeLink,
		mdast.NodeText,
	}

	if len(visited) != len(expected) {
		t.Fatalf("expected %d nodes, got %d (%v)", len(expected), len(visited), visited)
	}
	for i, kind := range expected {
		if visited[i] != kind {
			t.Errorf("node %d: expected %s, got %s", i, kind, visited[i])
		}
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	t.Parallel()

	visited := collectKinds(t, buildTestTree(), func(n *mdast.Node) error {
		if n.Kind == mdast.NodeBlockquote {
			return mdast.SkipChildren
		}
		return nil
	})

	for _, kind := range visited {
		if kind == mdast.NodeCodeBlock {
			t.Fatal("expected blockquote children to be skipped")
		}
	}
	if visited[len(visited)-1] != mdast.NodeText {
		t.Errorf("expected walk to continue after skipped subtree, got %v", visited)
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	count := 0
	err := mdast.Walk(buildTestTree(), func(*mdast.Node) error {
		count++
		if count == 3 {
			return boom
		}
		return nil
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if count != 3 {
		t.Errorf("expected walk to stop after 3 nodes, visited %d", count)
	}
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	if err := mdast.Walk(nil, func(*mdast.Node) error { return errors.New("unexpected") }); err != nil {
		t.Errorf("expected nil error for nil root, got %v", err)
	}
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	if got := len(mdast.FindByKind(doc, mdast.NodeText)); got != 2 {
		t.Errorf("FindByKind(Text) = %d nodes, want 2", got)
	}

	first := mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.IsInline() })
	if first == nil || first.Parent.Kind != mdast.NodeHeading {
		t.Errorf("expected first inline node under the heading, got %+v", first)
	}

	if mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeImage }) != nil {
		t.Error("expected no image node")
	}
}
