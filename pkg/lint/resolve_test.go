package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/lint"
	"github.com/yaklabco/gomdnest/pkg/lint/rules"
)

func resolvedIDs(rr []lint.ResolvedRule) []string {
	ids := make([]string, len(rr))
	for i, r := range rr {
		ids[i] = r.Rule.ID()
	}
	return ids
}

func TestResolveRules(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(rules.NewHeadingIncrementRule())
	registry.Register(rules.NewTrailingWhitespaceRule())
	registry.Register(rules.NewMaxLineLengthRule())

	off := false
	on := true
	errSev := string(config.SeverityError)

	tests := []struct {
		name string
		cfg  *config.Config
		want []string
	}{
		{name: "nil config", cfg: nil, want: []string{"MD001", "MD009", "MD013"}},
		{name: "defaults", cfg: config.NewConfig(), want: []string{"MD001", "MD009", "MD013"}},
		{
			name: "explicit disable",
			cfg:  &config.Config{Rules: map[string]config.RuleConfig{"MD009": {Enabled: &off}}},
			want: []string{"MD001", "MD013"},
		},
		{
			name: "default false",
			cfg:  &config.Config{Default: &off},
			want: nil,
		},
		{
			name: "default false with explicit enable",
			cfg:  &config.Config{Default: &off, Rules: map[string]config.RuleConfig{"MD013": {Enabled: &on}}},
			want: []string{"MD013"},
		},
		{
			name: "options imply enabled",
			cfg: &config.Config{Default: &off, Rules: map[string]config.RuleConfig{
				"MD013": {Options: map[string]any{"line_length": 120}},
			}},
			want: []string{"MD013"},
		},
		{
			name: "severity alone keeps default",
			cfg:  &config.Config{Rules: map[string]config.RuleConfig{"MD001": {Severity: &errSev}}},
			want: []string{"MD001", "MD009", "MD013"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := lint.ResolveRules(registry, tt.cfg)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, resolvedIDs(got))
		})
	}
}

func TestResolveRulesSeverity(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(rules.NewHeadingIncrementRule())

	sev := string(config.SeverityError)
	cfg := &config.Config{Rules: map[string]config.RuleConfig{"MD001": {Severity: &sev}}}

	got := lint.ResolveRules(registry, cfg)
	if assert.Len(t, got, 1) {
		assert.Equal(t, config.SeverityError, got[0].Severity)
		assert.NotNil(t, got[0].Config)
	}
}
