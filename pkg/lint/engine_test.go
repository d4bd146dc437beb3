package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/lint"
	"github.com/yaklabco/gomdnest/pkg/lint/rules"
	"github.com/yaklabco/gomdnest/pkg/parser/goldmark"
)

type failingRule struct {
	lint.BaseRule
}

func (r *failingRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	return nil, errors.New("boom")
}

func newTestEngine() *lint.Engine {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	rules.RegisterLegacyAliases(registry)
	return lint.NewEngine(goldmark.New(goldmark.FlavorGFM), registry)
}

func TestEngineLintFile(t *testing.T) {
	t.Parallel()

	engine := newTestEngine()
	content := "## Sub\nText \n"

	result, err := engine.LintFile(context.Background(), "doc.md", []byte(content), config.NewConfig())
	require.NoError(t, err)
	require.True(t, result.HasIssues())

	ids := make([]string, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		ids[i] = d.RuleID
		assert.Equal(t, "doc.md", d.FilePath)
		assert.NotEmpty(t, d.RuleName)
		assert.NotEmpty(t, d.Message)
		assert.Equal(t, config.SeverityWarning, d.Severity)
	}

	// MD022 and MD041 on line 1 sort by rule ID, MD009 follows on line 2.
	assert.Equal(t, []string{"MD022", "MD041", "MD009"}, ids)
}

func TestEngineHonoursDisabledRules(t *testing.T) {
	t.Parallel()

	engine := newTestEngine()
	cfg := config.NewConfig().WithDisabled("MD041", "MD022")

	result, err := engine.LintFile(context.Background(), "doc.md", []byte("## Sub\nText \n"), cfg)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "MD009", result.Diagnostics[0].RuleID)
}

func TestEngineRecordsRuleErrors(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&failingRule{BaseRule: lint.NewBaseRule("XX001", "always-fails", "Fails", nil)})
	registry.Register(rules.NewFinalNewlineRule())

	engine := lint.NewEngine(goldmark.New(goldmark.FlavorCommonMark), registry)
	result, err := engine.LintFile(context.Background(), "doc.md", []byte("text"), nil)
	require.NoError(t, err)

	assert.Contains(t, result.RuleErrors, "XX001")
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "MD047", result.Diagnostics[0].RuleID)
}

func TestEngineCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine().LintFile(ctx, "doc.md", []byte("# A\n"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSortDiagnostics(t *testing.T) {
	t.Parallel()

	diags := []lint.Diagnostic{
		{RuleID: "MD013", StartLine: 2, StartColumn: 1},
		{RuleID: "MD009", StartLine: 1, StartColumn: 5},
		{RuleID: "MD010", StartLine: 1, StartColumn: 1},
		{RuleID: "MD001", StartLine: 1, StartColumn: 5},
	}
	lint.SortDiagnostics(diags)

	var got []string
	for _, d := range diags {
		got = append(got, d.RuleID)
	}
	assert.Equal(t, []string{"MD010", "MD001", "MD009", "MD013"}, got)
}
