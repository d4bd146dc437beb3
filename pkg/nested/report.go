package nested

// BlockResult is the outcome of checking one non-blank block.
type BlockResult struct {
	Block Block

	// Index is 1-based among the checked blocks of the file.
	Index int

	Violations []Violation

	// Err wraps ErrChecker when the checker itself failed.
	Err error
}

// Failed reports whether the block has violations or an internal error.
func (r BlockResult) Failed() bool {
	return len(r.Violations) > 0 || r.Err != nil
}

// PendingResults returns one BlockResult per non-blank block, indexed in
// extraction order and ready to receive the checker's output.
func PendingResults(blocks []Block) []BlockResult {
	var results []BlockResult
	for _, block := range blocks {
		if block.IsBlank() {
			continue
		}
		results = append(results, BlockResult{Block: block, Index: len(results) + 1})
	}
	return results
}

// AbsoluteLine maps one of the block's violations to its file line.
func (r BlockResult) AbsoluteLine(v Violation) int {
	return AbsoluteLine(r.Block.RootLine, v.Line)
}

// FileReport collects everything found in one file.
type FileReport struct {
	Path string

	// Blocks lists every block found, blank ones included, in extraction order.
	Blocks []Block

	// Results holds one entry per checked block, in the same order.
	Results []BlockResult

	// Err is set when the file could not be read or extracted. Blocks and
	// Results are empty in that case.
	Err error
}

// ViolationCount returns the number of violations across all blocks.
func (f *FileReport) ViolationCount() int {
	n := 0
	for _, r := range f.Results {
		n += len(r.Violations)
	}
	return n
}

// Failing returns the results that have violations or an internal error.
func (f *FileReport) Failing() []BlockResult {
	var out []BlockResult
	for _, r := range f.Results {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out
}

// InternalErrors counts blocks whose check failed plus a file-level error.
func (f *FileReport) InternalErrors() int {
	n := 0
	if f.Err != nil {
		n++
	}
	for _, r := range f.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Verdict is the overall outcome of a run.
type Verdict int

const (
	// VerdictNoBlocks means no Markdown fence was found anywhere.
	VerdictNoBlocks Verdict = iota

	// VerdictPassed means blocks were found and none had violations.
	VerdictPassed

	// VerdictFailed means at least one violation was reported.
	VerdictFailed
)

// String returns a lowercase name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictNoBlocks:
		return "no-blocks"
	case VerdictPassed:
		return "passed"
	case VerdictFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Passed reports whether the run succeeded.
func (v Verdict) Passed() bool {
	return v != VerdictFailed
}

// ComputeVerdict derives the verdict from file reports. Internal errors do
// not fail the verdict; callers surface them separately.
func ComputeVerdict(files []FileReport) Verdict {
	verdict := VerdictNoBlocks
	for i := range files {
		if files[i].ViolationCount() > 0 {
			return VerdictFailed
		}
		if len(files[i].Blocks) > 0 {
			verdict = VerdictPassed
		}
	}
	return verdict
}
