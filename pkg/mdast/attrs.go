package mdast

// HeadingStyle distinguishes the two heading syntaxes.
type HeadingStyle uint8

const (
	// HeadingATX is a "# Title" heading.
	HeadingATX HeadingStyle = iota

	// HeadingSetext is a heading underlined with "=" or "-".
	HeadingSetext
)

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// HeadingStyle records which syntax produced a NodeHeading.
	HeadingStyle HeadingStyle

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	Ordered      bool
	BulletMarker string
	StartNumber  int
	Tight        bool
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// FenceChar is the fence character ('`' or '~'); zero for indented blocks.
	FenceChar byte

	// FenceLength is the number of fence characters on the opening line.
	FenceLength int

	// Info is the raw info string following the opening fence.
	Info string

	// Indented is true for indented code blocks (vs fenced).
	Indented bool

	// Closed is false when a fence runs to the end of its container.
	Closed bool

	// Content is the verbatim block body with container prefixes removed.
	Content []byte

	// ContentLines is the number of body lines.
	ContentLines int
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the text content for NodeText and NodeCodeSpan.
	Text []byte

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs

	// EmphasisLevel indicates emphasis strength (1 for emphasis, 2 for strong).
	EmphasisLevel int
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string

	// Title is the optional link title.
	Title string

	// Autolink is set for <https://...> links and GFM linkified URLs.
	Autolink bool
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithHeading sets the heading level and style for chaining.
func (a *BlockAttrs) WithHeading(level int, style HeadingStyle) *BlockAttrs {
	a.HeadingLevel = level
	a.HeadingStyle = style
	return a
}

// WithList sets list attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithCodeBlock sets code block attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithCodeBlock(attrs *CodeBlockAttrs) *BlockAttrs {
	a.CodeBlock = attrs
	return a
}

// WithText sets the text content and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithText(text []byte) *InlineAttrs {
	a.Text = text
	return a
}

// WithLink sets link attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}

// WithEmphasisLevel sets the emphasis level and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithEmphasisLevel(level int) *InlineAttrs {
	a.EmphasisLevel = level
	return a
}
