package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/runner"
)

// writeTree creates files under dir; keys are slash-separated paths.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relFiles(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscoverScansWorkingDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md":                     "# Readme\n",
		"docs/guide.md":                 "# Guide\n",
		"docs/api.MARKDOWN":             "# API\n",
		"docs/notes.txt":                "notes\n",
		"node_modules/pkg/README.md":    "# Dep\n",
		"web/node_modules/lib/index.md": "# Dep\n",
		".github/PULL_REQUEST.md":       "# PR\n",
		"docs/.draft.md":                "# Draft\n",
	})

	disc, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.False(t, disc.Explicit)
	assert.Empty(t, disc.Missing)
	assert.Equal(t, []string{"README.md", "docs/api.MARKDOWN", "docs/guide.md"}, relFiles(t, dir, disc.Files))
}

func TestDiscoverExcludePatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md":            "# Readme\n",
		"CHANGELOG.md":         "# Changes\n",
		"docs/guide.md":        "# Guide\n",
		"docs/CHANGELOG.md":    "# Changes\n",
		"vendor/lib/README.md": "# Vendored\n",
		"docs/old/legacy.md":   "# Legacy\n",
	})

	tests := []struct {
		name    string
		exclude []string
		ignore  []string
		want    []string
	}{
		{
			name: "no excludes",
			want: []string{"CHANGELOG.md", "README.md", "docs/CHANGELOG.md", "docs/guide.md", "docs/old/legacy.md", "vendor/lib/README.md"},
		},
		{
			name:    "base name pattern matches at any depth",
			exclude: []string{"CHANGELOG.md"},
			want:    []string{"README.md", "docs/guide.md", "docs/old/legacy.md", "vendor/lib/README.md"},
		},
		{
			name:    "directory pattern prunes subtree",
			exclude: []string{"vendor/**"},
			want:    []string{"CHANGELOG.md", "README.md", "docs/CHANGELOG.md", "docs/guide.md", "docs/old/legacy.md"},
		},
		{
			name:    "nested directory pattern",
			exclude: []string{"**/old/**"},
			want:    []string{"CHANGELOG.md", "README.md", "docs/CHANGELOG.md", "docs/guide.md", "vendor/lib/README.md"},
		},
		{
			name:   "config ignore list",
			ignore: []string{"docs/*.md"},
			want:   []string{"CHANGELOG.md", "README.md", "docs/old/legacy.md", "vendor/lib/README.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Ignore = tt.ignore

			disc, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir: dir,
				Exclude:    tt.exclude,
				Config:     cfg,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relFiles(t, dir, disc.Files))
		})
	}
}

func TestDiscoverExplicitPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md":     "# Readme\n",
		"notes.txt":     "```md\n# Notes\n```\n",
		"docs/guide.md": "# Guide\n",
		"docs/extra.md": "# Extra\n",
	})

	absReadme := filepath.Join(dir, "README.md")

	disc, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{absReadme, "README.md", "notes.txt", "missing.md", "docs"},
	})
	require.NoError(t, err)

	assert.True(t, disc.Explicit)
	assert.Equal(t, []string{"missing.md"}, disc.Missing)
	assert.Equal(t, []string{"README.md", "docs/extra.md", "docs/guide.md", "notes.txt"}, relFiles(t, dir, disc.Files))
}

func TestDiscoverExplicitFileHonoursExcludes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md":    "# Readme\n",
		"CHANGELOG.md": "# Changes\n",
	})

	disc, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"README.md", "CHANGELOG.md"},
		Exclude:    []string{"CHANGELOG.md"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, relFiles(t, dir, disc.Files))
}

func TestDiscoverInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Exclude:    []string{"[unclosed"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclude pattern")
}

func TestDiscoverCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"README.md": "# Readme\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}
