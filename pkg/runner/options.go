// Package runner finds Markdown files, extracts their nested blocks and
// checks them concurrently.
package runner

import "github.com/yaklabco/gomdnest/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories named on the command line.
	// Empty means "scan WorkingDir".
	Paths []string

	// WorkingDir resolves relative Paths and anchors exclude globs.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase extensions scanned inside directories.
	// Defaults to DefaultExtensions(). Files named explicitly are always read.
	Extensions []string

	// Exclude holds glob patterns relative to WorkingDir, using '/' as
	// separator. They are added to DefaultExcludes().
	Exclude []string

	// Jobs bounds the number of files and blocks processed at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for the run.
	Config *config.Config
}

// DefaultExtensions returns the extensions treated as Markdown.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// DefaultExcludes returns the patterns that are always skipped.
func DefaultExcludes() []string {
	return []string{"node_modules/**", "**/node_modules/**"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectiveExcludes() []string {
	patterns := DefaultExcludes()
	if o.Config != nil {
		patterns = append(patterns, o.Config.Ignore...)
	}
	return append(patterns, o.Exclude...)
}
