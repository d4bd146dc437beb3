package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdnest/pkg/config"
)

// envVarPrefix is the prefix for all gomdnest environment variables.
const envVarPrefix = "GOMDNEST_"

// EnvConfigPath names an explicit config file, like --config.
const EnvConfigPath = envVarPrefix + "CONFIG"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeSlice
)

type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":    {field: "flavor", typ: envTypeString},
	"JOBS":      {field: "jobs", typ: envTypeInt},
	"MAX_DEPTH": {field: "max_depth", typ: envTypeInt},
	"IGNORE":    {field: "ignore", typ: envTypeSlice},
}

// LoadFromEnv applies GOMDNEST_* overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, strings.TrimSpace(value), envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		if mapping.field == "flavor" {
			cfg.Flavor = config.Flavor(strings.ToLower(value))
		}
	case envTypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		switch mapping.field {
		case "jobs":
			cfg.Jobs = n
		case "max_depth":
			cfg.MaxDepth = n
		}
	case envTypeSlice:
		cfg.Ignore = append(cfg.Ignore, parseSliceValue(value)...)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
	return nil
}

// parseSliceValue splits a comma-separated list, dropping empty items.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		EnvConfigPath:        "Path to a markdownlint config file",
		"GOMDNEST_FLAVOR":    "Markdown flavor: commonmark or gfm",
		"GOMDNEST_JOBS":      "Number of parallel workers (0 = auto)",
		"GOMDNEST_MAX_DEPTH": "Deepest accepted fence nesting level",
		"GOMDNEST_IGNORE":    "Comma-separated list of ignore patterns",
	}
}
