package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discovery is the set of files a run will read.
type Discovery struct {
	// Files are absolute, sorted and unique.
	Files []string

	// Missing lists explicit paths that do not exist, as given.
	Missing []string

	// Explicit is true when the user named paths.
	Explicit bool

	// WorkingDir is the absolute base directory of the run.
	WorkingDir string
}

// Discover resolves opts into the list of files to check.
//
// Explicit paths that do not exist are recorded in Missing rather than
// failing the run. Directories, and the working directory when no paths are
// given, are walked for files with a Markdown extension, skipping hidden
// entries and anything matched by an exclude pattern.
func Discover(ctx context.Context, opts Options) (Discovery, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return Discovery{}, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.effectiveExcludes())
	if err != nil {
		return Discovery{}, err
	}

	w := walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   excludes,
		seen:       make(map[string]struct{}),
	}

	disc := Discovery{
		Explicit:   len(opts.Paths) > 0,
		WorkingDir: workDir,
	}

	paths := opts.Paths
	if !disc.Explicit {
		paths = []string{workDir}
	}

	for _, input := range paths {
		if err := ctx.Err(); err != nil {
			return Discovery{}, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, input)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if errors.Is(err, fs.ErrNotExist) {
			disc.Missing = append(disc.Missing, input)
			continue
		}
		if err != nil {
			return Discovery{}, fmt.Errorf("stat %s: %w", input, err)
		}

		if info.IsDir() {
			if err := w.walk(ctx, absPath); err != nil {
				return Discovery{}, err
			}
			continue
		}

		if !w.excluded(absPath, false) {
			w.add(absPath)
		}
	}

	slices.Sort(w.files)
	disc.Files = w.files

	return disc, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// pattern is a compiled exclude glob.
type pattern struct {
	glob glob.Glob

	// baseOnly patterns contain no '/' and are matched against the entry name
	// as well as the relative path.
	baseOnly bool
}

func compileGlobs(patterns []string) ([]pattern, error) {
	out := make([]pattern, 0, len(patterns))
	for _, raw := range patterns {
		raw = strings.TrimPrefix(strings.TrimSpace(raw), "./")
		if raw == "" {
			continue
		}
		g, err := glob.Compile(raw, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", raw, err)
		}
		out = append(out, pattern{glob: g, baseOnly: !strings.Contains(raw, "/")})
	}
	return out, nil
}

type walker struct {
	workDir    string
	extensions []string
	excludes   []pattern
	seen       map[string]struct{}
	files      []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if path != root && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != root && w.excluded(path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() && entry.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if !w.hasExtension(path) || w.excluded(path, false) {
			return nil
		}

		w.add(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (w *walker) hasExtension(path string) bool {
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path)))
}

// excluded matches path against the exclude patterns. Directories are also
// tried with a trailing slash so "dir/**" prunes "dir" itself.
func (w *walker) excluded(path string, isDir bool) bool {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, p := range w.excludes {
		if p.glob.Match(rel) {
			return true
		}
		if isDir && p.glob.Match(rel+"/") {
			return true
		}
		if p.baseOnly && p.glob.Match(base) {
			return true
		}
	}
	return false
}
