package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdnest/internal/configloader"
	"github.com/yaklabco/gomdnest/pkg/config"
)

// newRepo returns a temp dir marked as a VCS root so the upward search
// never leaves it.
func newRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func load(t *testing.T, opts configloader.LoadOptions) *configloader.LoadResult {
	t.Helper()
	opts.IgnoreEnv = true
	opts.Registry = newRegistry()
	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)
	return result
}

func TestLoadNoConfig(t *testing.T) {
	t.Parallel()

	result := load(t, configloader.LoadOptions{WorkingDir: newRepo(t)})

	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Config.Rules)
	assert.Equal(t, config.DefaultMaxDepth, result.Config.MaxDepth)
}

func TestLoadPrefersJSONC(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".markdownlint.jsonc"), "{ // relaxed\n \"MD013\": false }\n")
	writeFile(t, filepath.Join(dir, ".markdownlint.json"), `{"MD009": false}`)

	result := load(t, configloader.LoadOptions{WorkingDir: dir})

	assert.Equal(t, filepath.Join(dir, ".markdownlint.jsonc"), result.LoadedFrom)
	assert.Equal(t, result.LoadedFrom, result.Config.Source)
	assert.True(t, result.Config.IsDisabled("MD013"))
	assert.False(t, result.Config.IsDisabled("MD009"))
}

func TestLoadFallsThroughMalformedFile(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".markdownlint.jsonc"), `{"MD013": `)
	writeFile(t, filepath.Join(dir, ".markdownlint.json"), `{"MD009": false}`)

	result := load(t, configloader.LoadOptions{WorkingDir: dir})

	assert.Equal(t, filepath.Join(dir, ".markdownlint.json"), result.LoadedFrom)
	assert.True(t, result.Config.IsDisabled("MD009"))
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "could not read config file")
}

func TestLoadAllMalformedUsesDefaults(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".markdownlint.yaml"), "MD013: [unclosed\n")

	result := load(t, configloader.LoadOptions{WorkingDir: dir})

	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Config.Rules)
	assert.Len(t, result.Warnings, 1)
}

func TestLoadSearchesUpward(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".markdownlint.yml"), "line-length:\n  line_length: 100\n")
	sub := filepath.Join(dir, "docs", "guides")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result := load(t, configloader.LoadOptions{WorkingDir: sub})

	assert.Equal(t, filepath.Join(dir, ".markdownlint.yml"), result.LoadedFrom)
	assert.Equal(t, 100, result.Config.Rules["MD013"].Options["line_length"])
}

func TestLoadStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".markdownlint.json"), `{"MD013": false}`)
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result := load(t, configloader.LoadOptions{WorkingDir: repo})
	assert.Empty(t, result.LoadedFrom)
}

func TestLoadWarnsAboutScriptConfig(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".markdownlint.cjs"), "module.exports = {};\n")

	result := load(t, configloader.LoadOptions{WorkingDir: dir})
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "JavaScript configs cannot be loaded")
}

func TestLoadExplicitPath(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".markdownlint.json"), `{"MD009": false}`)
	explicit := filepath.Join(dir, "configs", "strict.yaml")
	writeFile(t, explicit, "default: true\nMD013: false\nbogus: 1\n")

	result := load(t, configloader.LoadOptions{WorkingDir: dir, ExplicitPath: explicit})

	assert.Equal(t, explicit, result.LoadedFrom)
	assert.True(t, result.Config.IsDisabled("MD013"))
	assert.False(t, result.Config.IsDisabled("MD009"))
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], explicit+": ")
}

func TestLoadExplicitPathErrors(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	broken := filepath.Join(dir, "broken.json")
	writeFile(t, broken, `{`)

	for _, path := range []string{broken, filepath.Join(dir, "missing.json")} {
		_, err := configloader.Load(context.Background(), configloader.LoadOptions{
			WorkingDir:   dir,
			ExplicitPath: path,
			IgnoreEnv:    true,
			Registry:     newRegistry(),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load config")
	}
}

func TestLoadRejectsInvalidSeverity(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".markdownlint.json"), `{"MD013": {"line_length": 100}}`)

	result := load(t, configloader.LoadOptions{WorkingDir: dir})
	require.NoError(t, configloader.Validate(result.Config))

	bad := "fatal"
	rc := result.Config.Rules["MD013"]
	rc.Severity = &bad
	result.Config.Rules["MD013"] = rc

	err := configloader.Validate(result.Config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown severity "fatal"`)
}
