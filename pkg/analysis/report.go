// Package analysis condenses a run into per-rule, per-file and per-depth
// counts of nested violations.
package analysis

// ReportVersion is the version of the analysis format.
const ReportVersion = "1.0.0"

// Report contains pre-computed views of a run. It is computed once by
// Analyze and read by renderers.
type Report struct {
	Version string         `json:"version"`
	ByRule  []RuleAnalysis `json:"byRule"`
	ByFile  []FileAnalysis `json:"byFile"`

	// ByDepth is indexed by nesting depth.
	ByDepth []DepthAnalysis `json:"byDepth"`

	Totals Totals `json:"totals"`
}

// Totals contains aggregate statistics.
type Totals struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`

	// DeepestBlock is the greatest depth of any block found.
	DeepestBlock int `json:"deepestBlock"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// RuleAnalysis aggregates one rule's violations.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Issues   int      `json:"issues"`
	Blocks   int      `json:"blocks"`
	Files    []string `json:"files"`
}

// FileAnalysis aggregates one file's violations.
type FileAnalysis struct {
	Path   string   `json:"path"`
	Issues int      `json:"issues"`
	Blocks int      `json:"blocks"`
	Rules  []string `json:"rules"`
}

// DepthAnalysis counts blocks and violations at one nesting depth.
type DepthAnalysis struct {
	Depth  int `json:"depth"`
	Blocks int `json:"blocks"`
	Issues int `json:"issues"`
}
