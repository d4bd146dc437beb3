// Package rules provides the built-in lint rules applied to nested Markdown.
//
// The set follows markdownlint numbering and naming so existing
// .markdownlint configuration files keep their meaning:
//
//   - Headings: MD001, MD018, MD022, MD025, MD026, MD041
//   - Whitespace: MD009, MD010, MD012, MD047
//   - Line length: MD013
//   - Code blocks: MD031, MD040
//   - Links: MD034, MD042, MD051
//
// All rules register themselves with lint.DefaultRegistry on import, together
// with the legacy aliases "single-title" (MD025) and "first-line-h1" (MD041).
package rules
