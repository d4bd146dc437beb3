package nested

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/lint"
)

// ErrChecker marks a failure of the rule checker itself, as opposed to a
// rule violation.
var ErrChecker = errors.New("internal linting error")

// SuppressedRules are switched off for every block: a fragment is not a
// whole document, so "first line must be a heading" (MD041) and "link
// fragments must resolve" (MD051) only produce noise.
//
//nolint:gochecknoglobals // read-only rule list
var SuppressedRules = []string{"MD041", "MD051"}

// Linter checks one Markdown document. *lint.Engine satisfies it.
type Linter interface {
	LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*lint.FileResult, error)
}

// Adapter runs the checker over block contents with the nested configuration.
// It is safe for concurrent use when the Linter is.
type Adapter struct {
	linter Linter
	cfg    *config.Config
}

// NewAdapter derives the nested configuration from base once. base itself
// is never modified.
func NewAdapter(linter Linter, base *config.Config) *Adapter {
	return &Adapter{
		linter: linter,
		cfg:    base.WithDisabled(SuppressedRules...),
	}
}

// Config returns the configuration applied to every block.
func (a *Adapter) Config() *config.Config {
	return a.cfg
}

// Lint checks a block's content. Blank blocks are not submitted and report
// checked == false. Violation lines are relative to the block content.
//
// A checker failure is returned as an error wrapping ErrChecker together with
// whatever violations the remaining rules produced.
func (a *Adapter) Lint(ctx context.Context, block Block) ([]Violation, bool, error) {
	if block.IsBlank() {
		return nil, false, nil
	}

	result, err := a.linter.LintFile(ctx, block.AncestryPath, []byte(block.Content), a.cfg)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrChecker, err)
	}

	var violations []Violation
	for _, diag := range result.Diagnostics {
		if slices.Contains(SuppressedRules, diag.RuleID) {
			continue
		}
		violations = append(violations, newViolation(diag))
	}

	if len(result.RuleErrors) > 0 {
		return violations, true, fmt.Errorf("%w: %w", ErrChecker, joinRuleErrors(result.RuleErrors))
	}

	return violations, true, nil
}

func joinRuleErrors(ruleErrors map[string]error) error {
	ids := make([]string, 0, len(ruleErrors))
	for id := range ruleErrors {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	errs := make([]error, 0, len(ids))
	for _, id := range ids {
		errs = append(errs, fmt.Errorf("rule %s: %w", id, ruleErrors[id]))
	}
	return errors.Join(errs...)
}
