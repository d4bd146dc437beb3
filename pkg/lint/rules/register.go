package rules

import "github.com/yaklabco/gomdnest/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Headings
	registry.Register(NewHeadingIncrementRule())      // MD001
	registry.Register(NewNoMissingSpaceATXRule())     // MD018
	registry.Register(NewHeadingBlankLinesRule())     // MD022
	registry.Register(NewSingleH1Rule())              // MD025
	registry.Register(NewNoTrailingPunctuationRule()) // MD026
	registry.Register(NewFirstLineHeadingRule())      // MD041

	// Whitespace
	registry.Register(NewTrailingWhitespaceRule()) // MD009
	registry.Register(NewHardTabsRule())           // MD010
	registry.Register(NewMultipleBlankLinesRule()) // MD012
	registry.Register(NewFinalNewlineRule())       // MD047

	// Line length
	registry.Register(NewMaxLineLengthRule()) // MD013

	// Code blocks
	registry.Register(NewBlanksAroundFencesRule()) // MD031
	registry.Register(NewCodeBlockLanguageRule())  // MD040

	// Links
	registry.Register(NewNoBareURLsRule())    // MD034
	registry.Register(NewEmptyLinkRule())     // MD042
	registry.Register(NewLinkFragmentsRule()) // MD051
}

// RegisterLegacyAliases registers markdownlint alias names that differ from
// a rule's canonical Name():
//   - "single-title" -> MD025 (canonical: "single-h1")
//   - "first-line-h1" -> MD041 (canonical: "first-line-heading").
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("single-title", "MD025")
	registry.RegisterAlias("first-line-h1", "MD041")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
}
