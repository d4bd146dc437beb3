package configloader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFile reads a markdownlint config into a generic map. JSON files may
// carry comments and trailing commas; .yaml and .yml files are YAML.
func ParseFile(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(content, formatOf(path))
}

// Parse decodes config content in the given format ("json" or "yaml").
// Empty content yields an empty map.
func Parse(content []byte, format string) (map[string]any, error) {
	raw := make(map[string]any)
	if len(bytes.TrimSpace(content)) == 0 {
		return raw, nil
	}

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	default:
		if err := parseJSONC(content, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	}

	if raw == nil {
		raw = make(map[string]any)
	}
	return raw, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// parseJSONC parses JSON, falling back to a comment-stripped copy.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	if err := json.Unmarshal(stripJSONC(content), target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONC removes // and /* */ comments and trailing commas before a
// closing bracket or brace. String contents are left untouched.
func stripJSONC(content []byte) []byte {
	out := make([]byte, 0, len(content))

	for i := 0; i < len(content); i++ {
		c := content[i]

		switch {
		case c == '"':
			end := skipString(content, i)
			out = append(out, content[i:end]...)
			i = end - 1

		case c == '/' && i+1 < len(content) && content[i+1] == '/':
			for i < len(content) && content[i] != '\n' {
				i++
			}
			if i < len(content) {
				out = append(out, '\n')
			}

		case c == '/' && i+1 < len(content) && content[i+1] == '*':
			i += 2
			for i+1 < len(content) && (content[i] != '*' || content[i+1] != '/') {
				i++
			}
			i++

		case c == ']' || c == '}':
			out = dropTrailingComma(out)
			out = append(out, c)

		default:
			out = append(out, c)
		}
	}

	return out
}

// skipString returns the index just past the string literal starting at i.
func skipString(content []byte, i int) int {
	for j := i + 1; j < len(content); j++ {
		switch content[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(content)
}

func dropTrailingComma(out []byte) []byte {
	j := len(out) - 1
	for j >= 0 && isJSONSpace(out[j]) {
		j--
	}
	if j >= 0 && out[j] == ',' {
		return append(out[:j], out[j+1:]...)
	}
	return out
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
