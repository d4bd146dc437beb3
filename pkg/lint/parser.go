package lint

import (
	"context"

	"github.com/yaklabco/gomdnest/pkg/mdast"
)

// Parser parses Markdown content into a FileSnapshot.
//
// Implementations must be deterministic for a given (path, content) pair,
// side-effect free and safe for concurrent use: nested blocks of one file are
// parsed from several goroutines at once.
type Parser interface {
	// Parse converts raw Markdown bytes into a FileSnapshot whose Root is a
	// NodeDocument and whose nodes all point back at the snapshot.
	// The content slice must not be mutated.
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}
