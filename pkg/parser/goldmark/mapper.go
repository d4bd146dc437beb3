package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomdnest/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree with byte spans.
type mapper struct {
	content []byte

	// emptyHeadings records the line end of ATX headings placed without
	// goldmark line segments.
	emptyHeadings map[ast.Node]int
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content, emptyHeadings: make(map[ast.Node]int)}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	mdast.SetSpan(doc, 0, len(m.content))
	return doc
}

// mapChildren maps all children of a goldmark node and appends them to parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		mdast.AppendChild(parent, m.mapNode(child))

		if txt, ok := child.(*ast.Text); ok {
			switch {
			case txt.HardLineBreak():
				mdast.AppendChild(parent, mdast.NewNode(mdast.NodeHardBreak))
			case txt.SoftLineBreak():
				mdast.AppendChild(parent, mdast.NewNode(mdast.NodeSoftBreak))
			}
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		return m.mapHeading(gmn)

	case *ast.Paragraph, *ast.TextBlock:
		return m.mapLeafBlock(gmNode, mdast.NodeParagraph)

	case *ast.List:
		return m.mapList(gmn)

	case *ast.ListItem:
		return m.mapContainer(gmNode, mdast.NodeListItem)

	case *ast.Blockquote:
		return m.mapContainer(gmNode, mdast.NodeBlockquote)

	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		return m.mapIndentedCodeBlock(gmn)

	case *ast.ThematicBreak:
		return mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn)

	case *ast.Text:
		node := mdast.NewNode(mdast.NodeText)
		node.Inline = mdast.NewInlineAttrs().WithText(gmn.Segment.Value(m.content))
		mdast.SetSpan(node, gmn.Segment.Start, gmn.Segment.Stop)
		return node

	case *ast.String:
		node := mdast.NewNode(mdast.NodeText)
		node.Inline = mdast.NewInlineAttrs().WithText(gmn.Value)
		return node

	case *ast.Emphasis:
		return m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		return m.mapCodeSpan(gmn)

	case *ast.Link:
		return m.mapLinkLike(gmn, mdast.NodeLink, gmn.Destination, gmn.Title)

	case *ast.Image:
		return m.mapLinkLike(gmn, mdast.NodeImage, gmn.Destination, gmn.Title)

	case *ast.AutoLink:
		return m.mapAutoLink(gmn)

	case *ast.RawHTML:
		return m.mapRawHTML(gmn)

	case *east.Strikethrough:
		node := m.mapInlineContainer(gmNode, mdast.NodeEmphasis)
		node.Ext = map[string]any{"strikethrough": true}
		return node

	case *east.TaskCheckBox:
		node := mdast.NewNode(mdast.NodeText)
		node.Ext = map[string]any{"taskCheckbox": true, "checked": gmn.IsChecked}
		return node

	case *east.Table:
		node := m.mapContainer(gmNode, mdast.NodeRaw)
		node.Ext = map[string]any{"table": true}
		return node

	default:
		if gmNode.Type() == ast.TypeBlock {
			return m.mapContainer(gmNode, mdast.NodeRaw)
		}
		return m.mapInlineContainer(gmNode, mdast.NodeRaw)
	}
}

// mapHeading converts a goldmark Heading, recording which syntax produced it.
func (m *mapper) mapHeading(heading *ast.Heading) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHeading)
	m.mapChildren(heading, node)

	style := mdast.HeadingATX
	lines := heading.Lines()

	if lines.Len() > 0 {
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		start := m.lineStart(first.Start)
		end := m.lineEnd(lastByte(last.Start, last.Stop))

		if !bytes.ContainsRune(m.content[start:first.Start], '#') {
			style = mdast.HeadingSetext
			if next := m.nextLineStart(end); next >= 0 {
				end = m.lineEnd(next)
			}
		}

		mdast.SetSpan(node, start, end)
	} else if start, end, ok := m.emptyHeadingLine(heading); ok {
		mdast.SetSpan(node, start, end)
		m.emptyHeadings[heading] = end
	}

	node.Block = mdast.NewBlockAttrs().WithHeading(heading.Level, style)
	return node
}

// emptyHeadingLine locates an ATX heading with no content ("#", "## ##").
// goldmark gives such headings no line segments, so the search starts after
// the last block preceding the heading in document order.
func (m *mapper) emptyHeadingLine(heading ast.Node) (int, int, bool) {
	line := 0
	if end, ok := m.precedingEnd(heading); ok {
		line = m.nextLineStart(end)
	}

	for line >= 0 && line <= len(m.content) {
		end := m.lineEnd(line)
		if isEmptyATXLine(m.content[line:end]) {
			return line, end, true
		}
		line = m.nextLineStart(end)
	}

	return 0, 0, false
}

// precedingEnd returns the line end of the last placed block before n.
func (m *mapper) precedingEnd(n ast.Node) (int, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		for sib := cur.PreviousSibling(); sib != nil; sib = sib.PreviousSibling() {
			if end, ok := m.lastLineEnd(sib); ok {
				return end, true
			}
		}
	}
	return 0, false
}

func (m *mapper) lastLineEnd(n ast.Node) (int, bool) {
	if n.Type() != ast.TypeBlock {
		return 0, false
	}
	if end, ok := m.emptyHeadings[n]; ok {
		return end, true
	}

	for child := n.LastChild(); child != nil; child = child.PreviousSibling() {
		if end, ok := m.lastLineEnd(child); ok {
			return end, true
		}
	}

	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0, false
	}
	last := lines.At(lines.Len() - 1)
	return m.lineEnd(lastByte(last.Start, last.Stop)), true
}

// isEmptyATXLine reports whether line, after any blockquote and list
// markers, is an ATX heading without text.
func isEmptyATXLine(line []byte) bool {
	rest := stripContainerMarkers(line)

	level := 0
	for level < len(rest) && rest[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false
	}

	return len(bytes.Trim(rest[level:], " \t#")) == 0
}

func stripContainerMarkers(line []byte) []byte {
	for {
		trimmed := bytes.TrimLeft(line, " \t>")
		if n := listMarkerLen(trimmed); n > 0 {
			trimmed = trimmed[n:]
		}
		if len(trimmed) == len(line) {
			return line
		}
		line = trimmed
	}
}

// listMarkerLen returns the length of a bullet or ordered list marker
// followed by whitespace or end of line, or 0.
func listMarkerLen(line []byte) int {
	n := 0
	switch {
	case len(line) > 0 && (line[0] == '-' || line[0] == '*' || line[0] == '+'):
		n = 1
	default:
		for n < len(line) && n < 9 && line[n] >= '0' && line[n] <= '9' {
			n++
		}
		if n == 0 || n >= len(line) || (line[n] != '.' && line[n] != ')') {
			return 0
		}
		n++
	}

	if n < len(line) && line[n] != ' ' && line[n] != '\t' {
		return 0
	}
	return n
}

// mapLeafBlock maps a block whose span is given by its own source lines.
func (m *mapper) mapLeafBlock(gmNode ast.Node, kind mdast.NodeKind) *mdast.Node {
	node := mdast.NewNode(kind)
	m.mapChildren(gmNode, node)
	m.spanFromLines(node, gmNode)
	return node
}

// mapContainer maps a block whose span is the union of its children.
func (m *mapper) mapContainer(gmNode ast.Node, kind mdast.NodeKind) *mdast.Node {
	node := mdast.NewNode(kind)
	m.mapChildren(gmNode, node)

	if !m.spanFromLines(node, gmNode) {
		start, end := childUnion(node)
		if start >= 0 {
			mdast.SetSpan(node, m.lineStart(start), m.lineEnd(lastByte(start, end)))
		}
	}

	return node
}

func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := m.mapContainer(list, mdast.NodeList)

	attrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if !list.IsOrdered() {
		attrs.BulletMarker = string(list.Marker)
	}

	node.Block = mdast.NewBlockAttrs().WithList(attrs)
	return node
}

// mapFencedCodeBlock records the fence, the verbatim body and the full span
// from the opening fence line to the closing fence line.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	lines := codeBlock.Lines()

	attrs := &mdast.CodeBlockAttrs{
		FenceChar:    '`',
		FenceLength:  3,
		ContentLines: lines.Len(),
	}

	var body bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		body.Write(seg.Value(m.content))
	}
	attrs.Content = body.Bytes()

	openLine := -1
	switch {
	case codeBlock.Info != nil:
		attrs.Info = string(codeBlock.Info.Segment.Value(m.content))
		openLine = m.lineStart(codeBlock.Info.Segment.Start)
		attrs.FenceChar, attrs.FenceLength = m.fenceBefore(codeBlock.Info.Segment.Start)
	case lines.Len() > 0:
		if ls := m.lineStart(lines.At(0).Start); ls > 0 {
			openLine = m.lineStart(ls - 1)
			attrs.FenceChar, attrs.FenceLength = m.fenceOnLine(openLine)
		}
	}

	if openLine < 0 {
		node.Block = mdast.NewBlockAttrs().WithCodeBlock(attrs)
		return node
	}

	end := m.lineEnd(openLine)
	if lines.Len() > 0 {
		last := lines.At(lines.Len() - 1)
		end = m.lineEnd(lastByte(last.Start, last.Stop))
	}

	if next := m.nextLineStart(end); next >= 0 {
		closeEnd := m.lineEnd(next)
		if isClosingFence(m.content[next:closeEnd], attrs.FenceChar, attrs.FenceLength) {
			attrs.Closed = true
			end = closeEnd
		}
	}

	mdast.SetSpan(node, openLine, end)
	node.Block = mdast.NewBlockAttrs().WithCodeBlock(attrs)
	return node
}

func (m *mapper) mapIndentedCodeBlock(codeBlock *ast.CodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	m.spanFromLines(node, codeBlock)

	lines := codeBlock.Lines()
	var body bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		body.Write(seg.Value(m.content))
	}

	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
		Indented:     true,
		Closed:       true,
		Content:      body.Bytes(),
		ContentLines: lines.Len(),
	})
	return node
}

func (m *mapper) mapHTMLBlock(html *ast.HTMLBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLBlock)
	if !m.spanFromLines(node, html) {
		return node
	}
	if html.HasClosure() && html.ClosureLine.Stop > node.Span.EndOffset {
		node.Span.EndOffset = m.lineEnd(lastByte(html.ClosureLine.Start, html.ClosureLine.Stop))
	}
	return node
}

func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	kind := mdast.NodeEmphasis
	if emphasis.Level == 2 {
		kind = mdast.NodeStrong
	}

	node := m.mapInlineContainer(emphasis, kind)
	node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(emphasis.Level)
	return node
}

// mapCodeSpan keeps the code text and widens the span over the backticks.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := m.mapInlineContainer(codeSpan, mdast.NodeCodeSpan)

	var text []byte
	for child := node.FirstChild; child != nil; child = child.Next {
		if child.Inline != nil {
			text = append(text, child.Inline.Text...)
		}
	}
	node.Inline = mdast.NewInlineAttrs().WithText(text)

	if node.Placed() {
		start, end := node.Span.StartOffset, node.Span.EndOffset
		for start > 0 && m.content[start-1] == '`' {
			start--
		}
		for end < len(m.content) && m.content[end] == '`' {
			end++
		}
		mdast.SetSpan(node, start, end)
	}

	return node
}

// mapLinkLike maps links and images, widening the span from the label text
// to the surrounding brackets and destination.
func (m *mapper) mapLinkLike(gmNode ast.Node, kind mdast.NodeKind, dest, title []byte) *mdast.Node {
	node := m.mapInlineContainer(gmNode, kind)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination: string(dest),
		Title:       string(title),
	})

	if !node.Placed() {
		return node
	}

	start, end := node.Span.StartOffset, node.Span.EndOffset
	if start > 0 && m.content[start-1] == '[' {
		start--
		if kind == mdast.NodeImage && start > 0 && m.content[start-1] == '!' {
			start--
		}
	}
	if end < len(m.content) && m.content[end] == ']' {
		end = m.skipDestination(end + 1)
	}

	mdast.SetSpan(node, start, end)
	return node
}

func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination: string(al.URL(m.content)),
		Autolink:    true,
	})

	label := mdast.NewNode(mdast.NodeText)
	label.Inline = mdast.NewInlineAttrs().WithText(al.Label(m.content))
	mdast.AppendChild(node, label)

	return node
}

func (m *mapper) mapRawHTML(raw *ast.RawHTML) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLInline)
	segs := raw.Segments
	if segs.Len() == 0 {
		return node
	}

	var text []byte
	for i := range segs.Len() {
		seg := segs.At(i)
		text = append(text, seg.Value(m.content)...)
	}
	node.Inline = mdast.NewInlineAttrs().WithText(text)
	mdast.SetSpan(node, segs.At(0).Start, segs.At(segs.Len()-1).Stop)

	return node
}

// mapInlineContainer maps an inline node whose span is the union of its children.
func (m *mapper) mapInlineContainer(gmNode ast.Node, kind mdast.NodeKind) *mdast.Node {
	node := mdast.NewNode(kind)
	m.mapChildren(gmNode, node)

	if start, end := childUnion(node); start >= 0 {
		mdast.SetSpan(node, start, end)
	}

	return node
}

// spanFromLines sets a line-aligned span from the node's own source lines.
func (m *mapper) spanFromLines(node *mdast.Node, gmNode ast.Node) bool {
	if gmNode.Type() != ast.TypeBlock {
		return false
	}

	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return false
	}

	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	mdast.SetSpan(node, m.lineStart(first.Start), m.lineEnd(lastByte(last.Start, last.Stop)))

	return true
}

// fenceBefore reads the fence run that ends right before the info string.
func (m *mapper) fenceBefore(infoStart int) (byte, int) {
	pos := infoStart - 1
	for pos >= 0 && (m.content[pos] == ' ' || m.content[pos] == '\t') {
		pos--
	}
	if pos < 0 || (m.content[pos] != '`' && m.content[pos] != '~') {
		return '`', 3
	}

	char := m.content[pos]
	length := 0
	for pos >= 0 && m.content[pos] == char {
		length++
		pos--
	}

	return char, length
}

// fenceOnLine reads the first fence run on the line starting at lineStart.
func (m *mapper) fenceOnLine(lineStart int) (byte, int) {
	line := m.content[lineStart:m.lineEnd(lineStart)]

	idx := bytes.IndexAny(line, "`~")
	if idx < 0 {
		return '`', 3
	}

	char := line[idx]
	length := 0
	for idx < len(line) && line[idx] == char {
		length++
		idx++
	}

	return char, length
}

// skipDestination advances past "(dest)" or "[label]" following a link label.
func (m *mapper) skipDestination(pos int) int {
	if pos >= len(m.content) {
		return pos
	}

	var open, closer byte
	switch m.content[pos] {
	case '(':
		open, closer = '(', ')'
	case '[':
		open, closer = '[', ']'
	default:
		return pos
	}

	depth := 0
	for i := pos; i < len(m.content); i++ {
		switch m.content[i] {
		case '\\':
			i++
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i + 1
			}
		case '\n':
			if i+1 < len(m.content) && m.content[i+1] == '\n' {
				return pos
			}
		}
	}

	return pos
}

func (m *mapper) lineStart(offset int) int {
	if offset > len(m.content) {
		offset = len(m.content)
	}
	for offset > 0 && m.content[offset-1] != '\n' {
		offset--
	}
	return offset
}

// lineEnd returns the offset of the newline ending the line holding offset,
// excluding a carriage return.
func (m *mapper) lineEnd(offset int) int {
	if offset < 0 {
		offset = 0
	}
	idx := offset
	for idx < len(m.content) && m.content[idx] != '\n' {
		idx++
	}
	if idx > 0 && m.content[idx-1] == '\r' {
		idx--
	}
	return idx
}

// nextLineStart returns the start of the line following the one ending at
// lineEnd, or -1 at end of content.
func (m *mapper) nextLineStart(lineEnd int) int {
	idx := lineEnd
	for idx < len(m.content) && m.content[idx] != '\n' {
		idx++
	}
	if idx+1 >= len(m.content) {
		return -1
	}
	return idx + 1
}

// isClosingFence reports whether line (with any container prefix) closes a
// fence opened with length characters of char.
func isClosingFence(line []byte, char byte, length int) bool {
	trimmed := bytes.TrimLeft(line, " \t>")
	run := 0
	for run < len(trimmed) && trimmed[run] == char {
		run++
	}
	return run >= length && len(bytes.TrimSpace(trimmed[run:])) == 0
}

// childUnion returns the smallest range covering all placed children.
func childUnion(node *mdast.Node) (int, int) {
	start, end := -1, -1
	for child := node.FirstChild; child != nil; child = child.Next {
		if !child.Placed() {
			continue
		}
		if start < 0 || child.Span.StartOffset < start {
			start = child.Span.StartOffset
		}
		if child.Span.EndOffset > end {
			end = child.Span.EndOffset
		}
	}
	return start, end
}

// lastByte returns the offset of the last byte of a [start, stop) range,
// or start when the range is empty.
func lastByte(start, stop int) int {
	if stop > start {
		return stop - 1
	}
	return start
}
