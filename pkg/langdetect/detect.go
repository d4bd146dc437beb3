// Package langdetect guesses the language of a code snippet. It backs the
// fenced-code-language suggestion and flags untagged fences whose body reads
// like Markdown, which the nested checker would otherwise never see.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined with confidence.
const Text = "text"

// Markdown is the tag suggested for Markdown-looking content.
const Markdown = "markdown"

// classifierCandidates limits go-enry's Bayesian classifier to languages
// commonly fenced in documentation.
//
//nolint:gochecknoglobals // read-only lookup table
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// detector reports a language tag, or "" when it does not recognise content.
type detector func(content []byte) string

// detectors run in order; the first hit wins.
//
//nolint:gochecknoglobals // read-only lookup table
var detectors = []detector{
	detectShebang,
	detectPrefix("package ", "go"),
	detectMarkdown,
	detectHTML,
	detectJSON,
	detectKeywords("dockerfile", "FROM ", "RUN "),
	detectSQL,
	detectKeywords("rust", "fn main()", "println!"),
	detectKeywords("python", "def ", "):"),
	detectKeywords("javascript", "=>", "const "),
	detectYAML,
}

// Detect returns the detected fence tag for code content, or Text.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	for _, detect := range detectors {
		if lang := detect(content); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// LooksLikeMarkdown reports whether content is most plausibly Markdown prose.
func LooksLikeMarkdown(content []byte) bool {
	return detectMarkdown(content) != ""
}

func detectShebang(content []byte) string {
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}
	return ""
}

func detectPrefix(prefix, lang string) detector {
	return func(content []byte) string {
		if bytes.HasPrefix(bytes.TrimSpace(content), []byte(prefix)) {
			return lang
		}
		return ""
	}
}

// detectKeywords matches when every keyword occurs somewhere in content.
func detectKeywords(lang string, keywords ...string) detector {
	return func(content []byte) string {
		for _, kw := range keywords {
			if !bytes.Contains(content, []byte(kw)) {
				return ""
			}
		}
		return lang
	}
}

var (
	mdHeadingRe = regexp.MustCompile(`(?m)^#{1,6}[ \t]+\S`)
	mdListRe    = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+[.)])[ \t]+\S`)
	mdLinkRe    = regexp.MustCompile(`\[[^\]\n]+\]\([^)\s]+\)`)
	mdFenceRe   = regexp.MustCompile("(?m)^[ \t]*(?:```|~~~)")
)

// detectMarkdown needs two independent Markdown signals, one of which must
// be a heading, so shell comments and bullet-only YAML do not qualify.
func detectMarkdown(content []byte) string {
	if !mdHeadingRe.Match(content) {
		return ""
	}
	if mdListRe.Match(content) || mdLinkRe.Match(content) || mdFenceRe.Match(content) ||
		len(mdHeadingRe.FindAllIndex(content, 2)) == 2 {
		return Markdown
	}
	return ""
}

func detectHTML(content []byte) string {
	lower := bytes.ToLower(content)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return "html"
		}
	}
	return ""
}

func detectJSON(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return "json"
	}
	return ""
}

func detectSQL(content []byte) string {
	upper := strings.ToUpper(strings.TrimSpace(string(content)))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return "sql"
		}
	}
	return ""
}

// detectYAML counts "key: value" and "- item" lines.
func detectYAML(content []byte) string {
	pairs := 0
	for line := range bytes.Lines(content) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0 || line[0] == '#':
			continue
		case bytes.HasPrefix(line, []byte("- ")):
			pairs++
		case bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"':
			pairs++
		}
	}

	if pairs >= 2 {
		return "yaml"
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
