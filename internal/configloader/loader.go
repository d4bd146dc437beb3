// Package configloader finds markdownlint configuration files and turns
// them into a config.Config.
//
// Lookup order: an explicit path (--config or GOMDNEST_CONFIG), otherwise
// the nearest directory at or above the working directory holding one of
// ConfigFileNames. A candidate that cannot be parsed is reported as a
// warning and the next one is tried; with no usable file every rule keeps
// its default. GOMDNEST_* environment variables are applied last.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gomdnest/pkg/config"
	"github.com/yaklabco/gomdnest/pkg/lint"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the upward search starts. Defaults to the current
	// working directory.
	WorkingDir string

	// ExplicitPath skips discovery. A file named this way must load.
	ExplicitPath string

	// Registry resolves rule keys. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry

	// IgnoreEnv skips GOMDNEST_* variables, including GOMDNEST_CONFIG.
	IgnoreEnv bool
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	Config *config.Config

	// LoadedFrom is the file the rules came from, or empty.
	LoadedFrom string

	// Warnings are non-fatal problems for the caller to log.
	Warnings []string
}

// Load resolves the configuration for a run.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	explicit := opts.ExplicitPath
	if explicit == "" && !opts.IgnoreEnv {
		explicit = os.Getenv(EnvConfigPath)
	}

	result := &LoadResult{}

	if explicit != "" {
		raw, err := ParseFile(explicit)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", explicit, err)
		}
		result.use(explicit, raw, registry)
	} else if err := result.discover(ctx, opts.WorkingDir, registry); err != nil {
		return nil, err
	}

	if result.Config == nil {
		result.Config = config.NewConfig()
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(result.Config); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if err := Validate(result.Config); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *LoadResult) discover(ctx context.Context, workDir string, registry *lint.Registry) error {
	candidates, err := FindCandidates(ctx, workDir)
	if err != nil {
		return fmt.Errorf("discover config: %w", err)
	}

	for _, script := range candidates.Scripts {
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("%s: JavaScript configs cannot be loaded; ignoring", script))
	}

	for _, path := range candidates.Files {
		raw, err := ParseFile(path)
		if err != nil {
			r.Warnings = append(r.Warnings, fmt.Sprintf("could not read config file %s: %v", path, err))
			continue
		}
		r.use(path, raw, registry)
		return nil
	}

	return nil
}

func (r *LoadResult) use(path string, raw map[string]any, registry *lint.Registry) {
	cfg, warnings := Convert(raw, registry)
	cfg.Source = path

	r.Config = cfg
	r.LoadedFrom = path
	for _, w := range warnings {
		r.Warnings = append(r.Warnings, path+": "+w)
	}
}
