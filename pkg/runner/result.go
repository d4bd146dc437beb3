package runner

import "github.com/yaklabco/gomdnest/pkg/nested"

// Stats captures aggregate counts for a run.
type Stats struct {
	// FilesScanned is the number of files read.
	FilesScanned int

	// FilesWithBlocks counts files containing at least one Markdown fence.
	FilesWithBlocks int

	// BlocksFound counts every extracted block, blank ones included.
	BlocksFound int

	// BlocksChecked counts blocks submitted to the checker.
	BlocksChecked int

	// BlocksWithIssues counts checked blocks with at least one violation.
	BlocksWithIssues int

	// Violations is the total number of violations.
	Violations int

	// InternalErrors counts file-level failures and checker failures.
	InternalErrors int
}

// Result is the outcome of a run.
type Result struct {
	// Files holds one report per discovered file, in discovery order.
	Files []nested.FileReport

	Discovery Discovery

	Stats Stats
}

// Verdict summarises the run.
func (r *Result) Verdict() nested.Verdict {
	if r == nil {
		return nested.VerdictNoBlocks
	}
	return nested.ComputeVerdict(r.Files)
}

// HasInternalErrors reports whether any file or block could not be checked.
func (r *Result) HasInternalErrors() bool {
	return r != nil && r.Stats.InternalErrors > 0
}

func (r *Result) accumulate(report *nested.FileReport) {
	r.Stats.FilesScanned++
	r.Stats.InternalErrors += report.InternalErrors()

	if len(report.Blocks) > 0 {
		r.Stats.FilesWithBlocks++
	}
	r.Stats.BlocksFound += len(report.Blocks)
	r.Stats.BlocksChecked += len(report.Results)

	for _, res := range report.Results {
		if len(res.Violations) > 0 {
			r.Stats.BlocksWithIssues++
		}
		r.Stats.Violations += len(res.Violations)
	}
}
