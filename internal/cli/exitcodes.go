package cli

import (
	"errors"

	"github.com/yaklabco/gomdnest/pkg/runner"
)

// Exit codes for gomdnest.
const (
	// ExitSuccess means every nested block passed, or none were found.
	ExitSuccess = 0

	// ExitLintErrors means at least one nested block has violations.
	ExitLintErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError means a file could not be processed: unreadable,
	// runaway recursion or a checker failure.
	ExitInternalError = 70
)

var (
	// ErrLintIssuesFound is returned when nested blocks have violations.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrInternal is returned when one or more files could not be checked.
	ErrInternal = errors.New("internal errors during run")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage wraps invalid flag values.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult maps a run to its process exit code. Violations win
// over internal errors.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.Violations > 0 {
		return ExitLintErrors
	}

	if result.HasInternalErrors() {
		return ExitInternalError
	}

	return ExitSuccess
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintErrors
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}
