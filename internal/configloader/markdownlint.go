package configloader

import (
	"slices"
	"strings"
)

// unsupportedRules maps markdownlint rules that have no built-in
// counterpart, by name, to their IDs. Configuring them is not an error.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unsupportedRules = map[string]string{
	"heading-style":                    "MD003",
	"ul-style":                         "MD004",
	"list-indent":                      "MD005",
	"ul-indent":                        "MD007",
	"no-reversed-links":                "MD011",
	"commands-show-output":             "MD014",
	"no-multiple-space-atx":            "MD019",
	"no-missing-space-closed-atx":      "MD020",
	"no-multiple-space-closed-atx":     "MD021",
	"heading-start-left":               "MD023",
	"no-duplicate-heading":             "MD024",
	"no-multiple-space-blockquote":     "MD027",
	"no-blanks-blockquote":             "MD028",
	"ol-prefix":                        "MD029",
	"list-marker-space":                "MD030",
	"blanks-around-lists":              "MD032",
	"no-inline-html":                   "MD033",
	"hr-style":                         "MD035",
	"no-emphasis-as-heading":           "MD036",
	"no-space-in-emphasis":             "MD037",
	"no-space-in-code":                 "MD038",
	"no-space-in-links":                "MD039",
	"required-headings":                "MD043",
	"proper-names":                     "MD044",
	"no-alt-text":                      "MD045",
	"code-block-style":                 "MD046",
	"code-fence-style":                 "MD048",
	"emphasis-style":                   "MD049",
	"strong-style":                     "MD050",
	"reference-links-images":           "MD052",
	"link-image-reference-definitions": "MD053",
	"link-image-style":                 "MD054",
	"table-pipe-style":                 "MD055",
	"table-column-count":               "MD056",
	"blanks-around-tables":             "MD058",
	"descriptive-link-text":            "MD059",
	"table-column-style":               "MD060",
}

// markdownlintTags are tag names markdownlint understands. Tags whose rules
// are all unsupported match nothing in the registry and are skipped quietly.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintTags = []string{
	"accessibility", "atx", "atx_closed", "blank_lines", "blockquote",
	"bullet", "code", "emphasis", "hard_tab", "headings", "hr", "html",
	"images", "indentation", "language", "line_length", "links", "ol",
	"spaces", "spelling", "table", "ul", "url", "whitespace",
}

// lookupUnsupported resolves a key naming an unsupported markdownlint rule,
// by ID or by name.
func lookupUnsupported(key string) (string, bool) {
	if id, ok := unsupportedRules[strings.ToLower(key)]; ok {
		return id, true
	}
	upper := strings.ToUpper(key)
	for _, id := range unsupportedRules {
		if id == upper {
			return id, true
		}
	}
	return "", false
}

func isKnownTag(key string) bool {
	return slices.Contains(markdownlintTags, strings.ToLower(key))
}
