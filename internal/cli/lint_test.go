package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdnest/internal/cli"
)

// The lint tests change directory, so none of them run in parallel.

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

var (
	cleanDoc = lines("# Clean", "", "```md", "# Inner", "", "Body text.", "```")
	dirtyDoc = lines("# Title", "", "```markdown", "# Inner", "", "Text ", "```")
	deepDoc  = lines(
		"# Deep", "",
		"`````markdown", "# A", "",
		"````md", "# B", "",
		"```md", "# C", "```",
		"````",
		"`````",
	)
)

// newRepo creates a temporary repository root holding files and makes it
// the working directory.
func newRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	t.Chdir(dir)
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	cmd.SetArgs(append(args, "--color", "never"))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return out.String(), err
}

func TestLintCleanTree(t *testing.T) {
	newRepo(t, map[string]string{"clean.md": cleanDoc, "plain.md": lines("# Plain")})

	out, err := runCLI(t, "lint")
	require.NoError(t, err)

	assert.Contains(t, out, "Found 2 Markdown file(s) to scan")
	assert.Contains(t, out, "clean.md: Found 1 nested Markdown block(s)")
	assert.Contains(t, out, "No issues found in nested Markdown code fences")
	assert.Contains(t, out, "Nested Markdown linting passed")
}

func TestLintReportsViolations(t *testing.T) {
	newRepo(t, map[string]string{"docs/dirty.md": dirtyDoc})

	out, err := runCLI(t, "lint")
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCode(err))

	assert.Contains(t, out, "File: docs/dirty.md")
	assert.Contains(t, out, "Code fence at line 3")
	assert.Contains(t, out, "MD009/no-trailing-spaces")
	assert.Contains(t, out, "Nested Markdown linting failed")
}

func TestLintRespectsConfigFile(t *testing.T) {
	newRepo(t, map[string]string{
		"dirty.md":                dirtyDoc,
		".markdownlint.jsonc":     "{\n  // trailing spaces are fine here\n  \"no-trailing-spaces\": false,\n}\n",
		"sub/.markdownlint.json":  "{}",
		"sub/unrelated.markdown":  lines("# Unrelated"),
		"node_modules/pkg/bad.md": dirtyDoc,
	})

	out, err := runCLI(t, "lint")
	require.NoError(t, err)
	assert.NotContains(t, out, "MD009")
	assert.NotContains(t, out, "node_modules")
}

func TestLintExplicitFiles(t *testing.T) {
	newRepo(t, map[string]string{"clean.md": cleanDoc, "dirty.md": dirtyDoc})

	out, err := runCLI(t, "lint", "clean.md", "missing.md")
	require.NoError(t, err)
	assert.Contains(t, out, "Linting 1 specified file(s)")
	assert.NotContains(t, out, "dirty.md")
}

func TestLintIgnoreFlag(t *testing.T) {
	newRepo(t, map[string]string{"clean.md": cleanDoc, "vendor/dirty.md": dirtyDoc})

	_, err := runCLI(t, "lint", "--ignore", "vendor/**")
	require.NoError(t, err)
}

func TestLintJSONOutput(t *testing.T) {
	newRepo(t, map[string]string{"dirty.md": dirtyDoc})

	out, err := runCLI(t, "lint", "--format", "json")
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	var doc struct {
		Verdict string `json:"verdict"`
		Files   []struct {
			Path   string `json:"path"`
			Checks []struct {
				Line       int `json:"line"`
				Violations []struct {
					RuleNames  []string `json:"ruleNames"`
					Line       int      `json:"line"`
					NestedLine int      `json:"nestedLine"`
				} `json:"violations"`
			} `json:"checks"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "failed", doc.Verdict)
	require.Len(t, doc.Files, 1)
	assert.Equal(t, "dirty.md", doc.Files[0].Path)
	require.Len(t, doc.Files[0].Checks, 1)

	var found bool
	for _, v := range doc.Files[0].Checks[0].Violations {
		if len(v.RuleNames) > 0 && v.RuleNames[0] == "MD009" {
			found = true
			assert.Equal(t, 6, v.Line)
			assert.Equal(t, 3, v.NestedLine)
		}
	}
	assert.True(t, found, "expected MD009 in JSON output")
}

func TestLintRunawayRecursion(t *testing.T) {
	newRepo(t, map[string]string{"deep.md": deepDoc})

	out, err := runCLI(t, "lint", "--max-depth", "1")
	require.ErrorIs(t, err, cli.ErrInternal)
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(err))
	assert.Contains(t, out, "runaway recursion")
}

func TestLintInvalidFormat(t *testing.T) {
	newRepo(t, nil)

	_, err := runCLI(t, "lint", "--format", "table")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestLintMissingExplicitConfig(t *testing.T) {
	newRepo(t, map[string]string{"clean.md": cleanDoc})

	_, err := runCLI(t, "lint", "--config", "nope.json")
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestConfigCommand(t *testing.T) {
	newRepo(t, map[string]string{".markdownlint.yaml": "line-length:\n  line_length: 120\n"})

	out, err := runCLI(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "# source: ")
	assert.Contains(t, out, ".markdownlint.yaml")
	assert.Contains(t, out, "MD013")
	assert.Contains(t, out, "120")
}

func TestInitCommand(t *testing.T) {
	dir := newRepo(t, nil)

	_, err := runCLI(t, "init")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, ".markdownlint.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "default: true")
	assert.Contains(t, string(content), "# MD009: false  # no-trailing-spaces")
	assert.Contains(t, string(content), "MD041: false  # first-line-heading (never applied inside code fences)")

	_, err = runCLI(t, "init")
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = runCLI(t, "init", "--force")
	require.NoError(t, err)
}
