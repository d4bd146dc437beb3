package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileNames are the markdownlint config files looked for in each
// directory, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ConfigFileNames = []string{
	".markdownlint.jsonc",
	".markdownlint.json",
	".markdownlint.yaml",
	".markdownlint.yml",
}

// scriptConfigFileNames are markdownlint configs that need a JavaScript
// runtime. They are detected only to warn about them.
//
//nolint:gochecknoglobals // Read-only lookup table.
var scriptConfigFileNames = []string{
	".markdownlint.cjs",
	".markdownlint.mjs",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// Candidates holds the config files found by FindCandidates.
type Candidates struct {
	// Files are loadable configs, nearest directory first and in
	// ConfigFileNames order within a directory.
	Files []string

	// Scripts are JavaScript configs that cannot be loaded.
	Scripts []string
}

// FindCandidates searches upward from startDir for markdownlint configs.
// The search stops after the first directory holding any config, at a VCS
// root, at the home directory or at the filesystem root.
func FindCandidates(ctx context.Context, startDir string) (Candidates, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Candidates{}, fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return Candidates{}, fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	currentDir := absDir
	for {
		if err := ctx.Err(); err != nil {
			return Candidates{}, fmt.Errorf("context cancelled: %w", err)
		}

		found := Candidates{
			Files:   existingIn(currentDir, ConfigFileNames),
			Scripts: existingIn(currentDir, scriptConfigFileNames),
		}
		if len(found.Files) > 0 || len(found.Scripts) > 0 {
			return found, nil
		}

		if isVCSRoot(currentDir) || (homeDir != "" && currentDir == homeDir) {
			return Candidates{}, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return Candidates{}, nil
		}
		currentDir = parentDir
	}
}

func existingIn(dir string, names []string) []string {
	var out []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			out = append(out, path)
		}
	}
	return out
}

// isVCSRoot checks if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
