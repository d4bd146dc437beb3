package rules

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdnest/pkg/lint"
	"github.com/yaklabco/gomdnest/pkg/mdast"
)

// NoBareURLsRule flags URLs that are not wrapped in angle brackets or links.
type NoBareURLsRule struct {
	lint.BaseRule
}

// NewNoBareURLsRule creates the MD034 rule.
func NewNoBareURLsRule() *NoBareURLsRule {
	return &NoBareURLsRule{
		BaseRule: lint.NewBaseRule(
			"MD034",
			"no-bare-urls",
			"Bare URL used",
			[]string{"links", "url"},
		),
	}
}

var (
	bareURLRe     = regexp.MustCompile(`(?i)\b(?:https?|ftp)://[^\s<>\[\]()"'` + "`" + `]*[^\s<>\[\]()"'` + "`" + `.,;:!?]`)
	inlineLinkRe  = regexp.MustCompile(`!?\[[^\]]*\]\([^)]*\)`)
	angleRe       = regexp.MustCompile(`<[^<>\s]+>|<[a-zA-Z][^<>]*>`)
	refDefinition = regexp.MustCompile(`^\s*\[[^\]]+\]:`)
)

// Apply scans lines outside code and HTML blocks. URLs inside code spans,
// inline links, autolinks and HTML tags are not bare.
func (r *NoBareURLsRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for line := 1; line <= ctx.File.LineCount(); line++ {
		if ctx.IsLineInCodeBlock(line) || ctx.IsLineInHTMLBlock(line) {
			continue
		}

		content := ctx.File.LineContent(line)
		if refDefinition.Match(content) {
			continue
		}

		masked := maskedRanges(content)
		for _, match := range bareURLRe.FindAllIndex(content, -1) {
			if overlaps(masked, match[0], match[1]) {
				continue
			}

			url := string(content[match[0]:match[1]])
			diags = append(diags, lint.NewLineDiagnostic(r.ID(), ctx.File.Path, line, match[0]+1,
				match[1]-match[0], r.Description()).
				WithDetail(contextDetail([]byte(url))).
				WithSuggestion("Wrap the URL in angle brackets: <"+url+">").
				Build())
		}
	}

	return diags, nil
}

// maskedRanges returns byte ranges of a line where URLs are not bare.
func maskedRanges(line []byte) [][2]int {
	var ranges [][2]int

	for _, m := range inlineLinkRe.FindAllIndex(line, -1) {
		ranges = append(ranges, [2]int{m[0], m[1]})
	}
	for _, m := range angleRe.FindAllIndex(line, -1) {
		ranges = append(ranges, [2]int{m[0], m[1]})
	}

	return append(ranges, codeSpanRanges(line)...)
}

// codeSpanRanges pairs backtick runs of equal length.
func codeSpanRanges(line []byte) [][2]int {
	var ranges [][2]int

	for idx := 0; idx < len(line); {
		if line[idx] != '`' {
			idx++
			continue
		}

		run := backtickRun(line, idx)
		closing := -1
		for j := idx + run; j < len(line); {
			if line[j] != '`' {
				j++
				continue
			}
			other := backtickRun(line, j)
			if other == run {
				closing = j
				break
			}
			j += other
		}

		if closing < 0 {
			idx += run
			continue
		}

		ranges = append(ranges, [2]int{idx, closing + run})
		idx = closing + run
	}

	return ranges
}

func backtickRun(line []byte, start int) int {
	n := 0
	for start+n < len(line) && line[start+n] == '`' {
		n++
	}
	return n
}

func overlaps(ranges [][2]int, start, end int) bool {
	for _, rg := range ranges {
		if start < rg[1] && end > rg[0] {
			return true
		}
	}
	return false
}

// EmptyLinkRule flags links with no destination.
type EmptyLinkRule struct {
	lint.BaseRule
}

// NewEmptyLinkRule creates the MD042 rule.
func NewEmptyLinkRule() *EmptyLinkRule {
	return &EmptyLinkRule{
		BaseRule: lint.NewBaseRule(
			"MD042",
			"no-empty-links",
			"No empty links",
			[]string{"links"},
		),
	}
}

// Apply reports links whose destination is empty or a bare "#".
func (r *EmptyLinkRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, link := range ctx.Links() {
		attrs := link.Inline.Link
		if attrs.Autolink {
			continue
		}

		dest := strings.TrimSpace(attrs.Destination)
		if dest != "" && dest != "#" {
			continue
		}

		diags = append(diags, lint.NewDiagnostic(r.ID(), link, r.Description()).
			WithDetail(contextDetail(link.Text())).
			Build())
	}

	return diags, nil
}

// LinkFragmentsRule checks that "#fragment" links point at an anchor in the
// same document.
type LinkFragmentsRule struct {
	lint.BaseRule
}

// NewLinkFragmentsRule creates the MD051 rule.
func NewLinkFragmentsRule() *LinkFragmentsRule {
	return &LinkFragmentsRule{
		BaseRule: lint.NewBaseRule(
			"MD051",
			"link-fragments",
			"Link fragments should be valid",
			[]string{"links"},
		),
	}
}

var (
	htmlAnchorRe    = regexp.MustCompile(`(?i)\s(?:id|name)\s*=\s*["']?([^"'\s>]+)`)
	lineFragmentRe  = regexp.MustCompile(`^L\d+(?:C\d+)?(?:-L\d+(?:C\d+)?)?$`)
	topFragmentName = "top"
)

// Apply collects heading and HTML anchors and validates every fragment-only
// link against them. Matching ignores case only with ignore_case.
func (r *LinkFragmentsRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	ignoreCase := ctx.OptionBool("ignore_case", false)
	anchors := collectAnchors(ctx)

	var diags []lint.Diagnostic

	for _, link := range ctx.Links() {
		dest := link.Inline.Link.Destination
		if len(dest) < 2 || dest[0] != '#' {
			continue
		}

		fragment := dest[1:]
		if fragment == topFragmentName || lineFragmentRe.MatchString(fragment) {
			continue
		}

		anchor, exact := anchors.lookup(fragment, ignoreCase)
		if exact {
			continue
		}

		builder := lint.NewDiagnostic(r.ID(), link, r.Description())
		if anchor != "" {
			builder.WithDetail(expectedActual("#"+anchor, dest)).
				WithSuggestion("Use #" + anchor)
		} else {
			builder.WithDetail(contextDetail(link.Text()))
		}
		diags = append(diags, builder.Build())
	}

	return diags, nil
}

func collectAnchors(ctx *lint.RuleContext) *anchorSet {
	anchors := newAnchorSet()

	for _, heading := range ctx.Headings() {
		anchors.addHeading(plainText(heading))
	}

	for _, node := range ctx.HTMLNodes() {
		text := node.Text()
		if node.Kind == mdast.NodeHTMLInline && node.Inline != nil {
			text = node.Inline.Text
		}
		for _, m := range htmlAnchorRe.FindAllSubmatch(text, -1) {
			anchors.add(string(m[1]))
		}
	}

	return anchors
}
