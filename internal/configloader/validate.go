package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdnest/pkg/config"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "max_depth").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file the value came from, if known.
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Validate checks the resolved configuration. The first problem found is
// returned.
func Validate(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	switch cfg.Flavor {
	case config.FlavorCommonMark, config.FlavorGFM:
	default:
		return &ValidationError{
			Field:    "flavor",
			Value:    cfg.Flavor,
			Message:  fmt.Sprintf("unknown flavor %q; expected commonmark or gfm", cfg.Flavor),
			FilePath: cfg.Source,
		}
	}

	if cfg.MaxDepth < 1 {
		return &ValidationError{
			Field:   "max_depth",
			Value:   cfg.MaxDepth,
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.MaxDepth),
		}
	}

	if cfg.Jobs < 0 {
		return &ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Jobs),
		}
	}

	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return &ValidationError{
				Field:   "ignore",
				Value:   pattern,
				Message: fmt.Sprintf("invalid pattern %q: %v", pattern, err),
			}
		}
	}

	for _, id := range cfg.RuleIDs() {
		rc := cfg.Rules[id]
		if rc.Severity == nil {
			continue
		}
		switch config.Severity(*rc.Severity) {
		case config.SeverityError, config.SeverityWarning, config.SeverityInfo:
		default:
			return &ValidationError{
				Field:    "rules." + id + ".severity",
				Value:    *rc.Severity,
				Message:  fmt.Sprintf("unknown severity %q", *rc.Severity),
				FilePath: cfg.Source,
			}
		}
	}

	return nil
}
