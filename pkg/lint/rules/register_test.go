package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdnest/pkg/lint"
)

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	RegisterAll(registry)
	RegisterLegacyAliases(registry)

	assert.Equal(t, []string{
		"MD001", "MD009", "MD010", "MD012", "MD013", "MD018", "MD022", "MD025",
		"MD026", "MD031", "MD034", "MD040", "MD041", "MD042", "MD047", "MD051",
	}, registry.IDs())

	tests := []struct {
		key  string
		want string
	}{
		{"MD041", "MD041"},
		{"md041", "MD041"},
		{"first-line-heading", "MD041"},
		{"first-line-h1", "MD041"},
		{"single-title", "MD025"},
		{"Single-H1", "MD025"},
		{"link-fragments", "MD051"},
	}

	for _, tt := range tests {
		rule, ok := registry.Resolve(tt.key)
		require.True(t, ok, tt.key)
		assert.Equal(t, tt.want, rule.ID(), tt.key)
	}

	_, ok := registry.Resolve("no-inline-html")
	assert.False(t, ok)
}

func TestRulesHaveMetadata(t *testing.T) {
	t.Parallel()

	for _, rule := range lint.DefaultRegistry.Rules() {
		assert.NotEmpty(t, rule.Name(), rule.ID())
		assert.NotEmpty(t, rule.Description(), rule.ID())
		assert.NotEmpty(t, rule.Tags(), rule.ID())
		assert.True(t, rule.DefaultEnabled(), rule.ID())
	}
}
