package configloader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdnest/internal/configloader"
	"github.com/yaklabco/gomdnest/pkg/lint"
	"github.com/yaklabco/gomdnest/pkg/lint/rules"
)

func newRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	rules.RegisterLegacyAliases(registry)
	return registry
}

func TestConvertRuleKeys(t *testing.T) {
	t.Parallel()

	cfg, warnings := configloader.Convert(map[string]any{
		"md013":              map[string]any{"line_length": float64(120)},
		"no-trailing-spaces": false,
		"first-line-h1":      nil,
		"MD034":              true,
		"MD040":              "error",
		"$schema":            "https://example.com/schema.json",
	}, newRegistry())

	assert.Empty(t, warnings)

	require.Contains(t, cfg.Rules, "MD013")
	assert.True(t, *cfg.Rules["MD013"].Enabled)
	assert.Equal(t, map[string]any{"line_length": float64(120)}, cfg.Rules["MD013"].Options)

	assert.True(t, cfg.IsDisabled("MD009"))
	assert.True(t, cfg.IsDisabled("MD041"))
	assert.True(t, *cfg.Rules["MD034"].Enabled)

	require.NotNil(t, cfg.Rules["MD040"].Severity)
	assert.Equal(t, "error", *cfg.Rules["MD040"].Severity)
}

func TestConvertDefaultAndTags(t *testing.T) {
	t.Parallel()

	cfg, warnings := configloader.Convert(map[string]any{
		"default":    false,
		"whitespace": true,
		"MD010":      false,
	}, newRegistry())

	assert.Empty(t, warnings)
	require.NotNil(t, cfg.Default)
	assert.False(t, *cfg.Default)

	assert.True(t, *cfg.Rules["MD009"].Enabled)
	assert.True(t, *cfg.Rules["MD012"].Enabled)
	assert.True(t, cfg.IsDisabled("MD010"), "rule entry must win over its tag")
}

func TestConvertWarnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{name: "extends", raw: map[string]any{"extends": "base.json"}, want: `"extends" is not supported`},
		{name: "unsupported rule by name", raw: map[string]any{"ul-style": false}, want: "rule MD004 (ul-style) is not available"},
		{name: "unsupported rule by id", raw: map[string]any{"md033": false}, want: "rule MD033 (md033) is not available"},
		{name: "unknown key", raw: map[string]any{"bogus": true}, want: `unknown rule or tag "bogus"`},
		{name: "bad default", raw: map[string]any{"default": "yes"}, want: `"default" must be a boolean`},
		{name: "bad value", raw: map[string]any{"MD013": float64(3)}, want: `invalid value of type float64 for "MD013"`},
		{name: "duplicate", raw: map[string]any{"MD013": false, "line-length": true}, want: "both refer to MD013"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, warnings := configloader.Convert(tt.raw, newRegistry())
			require.Len(t, warnings, 1)
			assert.Contains(t, warnings[0], tt.want)
		})
	}
}

func TestConvertTagWithoutBuiltInRulesIsQuiet(t *testing.T) {
	t.Parallel()

	cfg, warnings := configloader.Convert(map[string]any{"html": false}, newRegistry())
	assert.Empty(t, warnings)
	assert.Empty(t, cfg.Rules)
}
