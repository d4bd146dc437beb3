// Package config defines the configuration types shared by the loader, the
// rule engine and the nested-block pipeline. Values are plain data; loading
// and discovery live in internal/configloader.
package config

import "slices"

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// OutputFormat specifies the output format for reports.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultMaxDepth bounds how deeply fenced Markdown may nest before a file
// is rejected as runaway recursion.
const DefaultMaxDepth = 50

// Config is the root configuration structure.
//
// A Config is treated as read-only once loaded. Derived configurations are
// produced with Clone or WithDisabled so concurrent checks never observe a
// mutation.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// Default is the markdownlint "default" key: when set, it decides the
	// enabled state of every rule not configured explicitly.
	Default *bool `yaml:"default,omitempty"`

	// Rules contains per-rule configuration keyed by canonical rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore,omitempty"`

	// MaxDepth is the deepest nesting level accepted per file.
	MaxDepth int `yaml:"max_depth"`

	// Source is the path of the file the rules were read from, if any.
	Source string `yaml:"-"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers (0 = GOMAXPROCS).
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with defaults: every rule at its own default,
// CommonMark parsing, text output.
func NewConfig() *Config {
	return &Config{
		Flavor:   FlavorCommonMark,
		Rules:    make(map[string]RuleConfig),
		MaxDepth: DefaultMaxDepth,
		Format:   FormatText,
	}
}

// WithDisabled returns a copy of the configuration in which the given rule IDs
// are forced off, regardless of what the receiver says about them.
func (c *Config) WithDisabled(ruleIDs ...string) *Config {
	clone := c.Clone()
	if clone == nil {
		clone = NewConfig()
	}
	if clone.Rules == nil {
		clone.Rules = make(map[string]RuleConfig, len(ruleIDs))
	}

	for _, id := range ruleIDs {
		rc := clone.Rules[id]
		disabled := false
		rc.Enabled = &disabled
		clone.Rules[id] = rc
	}

	return clone
}

// IsDisabled reports whether a rule is explicitly switched off.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	rc, ok := c.Rules[ruleID]
	return ok && rc.Enabled != nil && !*rc.Enabled
}

// RuleIDs returns the configured rule IDs in sorted order.
func (c *Config) RuleIDs() []string {
	ids := make([]string, 0, len(c.Rules))
	for id := range c.Rules {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
