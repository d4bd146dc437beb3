package lint

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry holds all registered lint rules.
//
// Lookups are case-insensitive: markdownlint accepts "md013", "MD013" and
// "Line-Length" as the same key.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Rule
	byName  map[string]Rule
	aliases map[string]string // lowercased alias -> canonical ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		byName:  make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds a rule to the registry, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[strings.ToUpper(rule.ID())] = rule
	r.byName[strings.ToLower(rule.Name())] = rule
}

// RegisterAlias maps a legacy markdownlint alias to a canonical rule ID
// (e.g., "first-line-h1" -> "MD041").
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = strings.ToUpper(ruleID)
}

// Resolve returns the rule for a key that may be an ID, a name or an alias.
func (r *Registry) Resolve(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[strings.ToUpper(key)]; ok {
		return rule, true
	}

	lower := strings.ToLower(key)
	if rule, ok := r.byName[lower]; ok {
		return rule, true
	}
	if target, ok := r.aliases[lower]; ok {
		rule, ok := r.byID[target]
		return rule, ok
	}

	return nil, false
}

// WithTag returns the rules carrying the given tag, sorted by ID.
func (r *Registry) WithTag(tag string) []Rule {
	tag = strings.ToLower(tag)

	var out []Rule
	for _, rule := range r.Rules() {
		if slices.ContainsFunc(rule.Tags(), func(t string) bool { return strings.ToLower(t) == tag }) {
			out = append(out, rule)
		}
	}
	return out
}

// Rules returns all registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}

	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	return result
}

// IDs returns all registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	rules := r.Rules()
	ids := make([]string, len(rules))
	for i, rule := range rules {
		ids[i] = rule.ID()
	}
	return ids
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
