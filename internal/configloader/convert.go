package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/lint"
)

// Special markdownlint keys that are not rules or tags.
const (
	keyDefault = "default"
	keyExtends = "extends"
	keySchema  = "$schema"
)

// Convert turns a markdownlint config object into a Config. Keys may be rule
// IDs in any case, rule names, legacy aliases or tags. Tags are applied
// before individual rules, so a rule entry always wins over its tag.
//
// Values follow markdownlint: false or null disables, true enables, an
// object enables with options. The strings "error" and "warning" enable the
// rule at that severity.
func Convert(raw map[string]any, registry *lint.Registry) (*config.Config, []string) {
	cfg := config.NewConfig()
	var warnings []string

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var ruleKeys []string
	for _, key := range keys {
		value := raw[key]

		switch key {
		case keySchema:
			continue
		case keyDefault:
			if b, ok := value.(bool); ok {
				cfg.Default = &b
			} else {
				warnings = append(warnings, fmt.Sprintf("%q must be a boolean; ignoring", keyDefault))
			}
			continue
		case keyExtends:
			warnings = append(warnings, fmt.Sprintf("%q is not supported; the referenced config is not loaded", keyExtends))
			continue
		}

		if _, ok := registry.Resolve(key); ok {
			ruleKeys = append(ruleKeys, key)
			continue
		}

		if tagged := registry.WithTag(key); len(tagged) > 0 {
			for _, rule := range tagged {
				applyRuleValue(cfg, rule.ID(), value, key, &warnings)
			}
			continue
		}

		if id, ok := lookupUnsupported(key); ok {
			warnings = append(warnings, fmt.Sprintf("rule %s (%s) is not available; ignoring", id, key))
			continue
		}
		if isKnownTag(key) {
			continue
		}

		warnings = append(warnings, fmt.Sprintf("unknown rule or tag %q; ignoring", key))
	}

	seen := make(map[string]string, len(ruleKeys))
	for _, key := range ruleKeys {
		rule, _ := registry.Resolve(key)
		if previous, dup := seen[rule.ID()]; dup {
			warnings = append(warnings, fmt.Sprintf(
				"duplicate rule configuration: %q and %q both refer to %s; using %q",
				previous, key, rule.ID(), key))
		}
		seen[rule.ID()] = key
		applyRuleValue(cfg, rule.ID(), raw[key], key, &warnings)
	}

	return cfg, warnings
}

func applyRuleValue(cfg *config.Config, id string, value any, key string, warnings *[]string) {
	rc := config.RuleConfig{}

	switch v := value.(type) {
	case nil:
		rc.Enabled = boolPtr(false)
	case bool:
		rc.Enabled = boolPtr(v)
	case map[string]any:
		rc.Enabled = boolPtr(true)
		rc.Options = make(map[string]any, len(v))
		for name, opt := range v {
			if name == "enabled" {
				if b, ok := opt.(bool); ok {
					rc.Enabled = boolPtr(b)
				}
				continue
			}
			rc.Options[name] = opt
		}
	case string:
		switch sev := strings.ToLower(v); sev {
		case string(config.SeverityError), string(config.SeverityWarning):
			rc.Enabled = boolPtr(true)
			rc.Severity = &sev
		default:
			*warnings = append(*warnings, fmt.Sprintf("invalid value %q for %q; ignoring", v, key))
			return
		}
	default:
		*warnings = append(*warnings, fmt.Sprintf("invalid value of type %T for %q; ignoring", value, key))
		return
	}

	cfg.Rules[id] = rc
}

func boolPtr(b bool) *bool {
	return &b
}
