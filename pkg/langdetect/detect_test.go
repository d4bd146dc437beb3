package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdnest/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", langdetect.Text},
		{"whitespace", "  \n\t\n", langdetect.Text},
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hi')", "python"},
		{"go", "package main\n\nfunc main() {}\n", "go"},
		{"markdown", "# Title\n\n- one\n- two\n", langdetect.Markdown},
		{"markdown with link", "## Usage\n\nSee [docs](https://example.com).\n", langdetect.Markdown},
		{"html", "<!DOCTYPE html>\n<html></html>", "html"},
		{"json", `{"key": "value"}`, "json"},
		{"sql", "SELECT * FROM users;", "sql"},
		{"rust", "fn main() {\n    println!(\"hi\");\n}", "rust"},
		{"yaml", "name: app\nversion: 1\n", "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestLooksLikeMarkdown(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.LooksLikeMarkdown([]byte("# Intro\n\n```go\nx := 1\n```\n")))
	assert.True(t, langdetect.LooksLikeMarkdown([]byte("# One\n\n## Two\n")))
	assert.False(t, langdetect.LooksLikeMarkdown([]byte("# just a shell comment\necho hi\n")))
	assert.False(t, langdetect.LooksLikeMarkdown([]byte("- a\n- b\n")))
	assert.False(t, langdetect.LooksLikeMarkdown([]byte("#nospace\n- a\n")))
}
