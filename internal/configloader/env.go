package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gowsfmt/pkg/config"
)

// envVarPrefix is the prefix for all gowsfmt environment variables.
const envVarPrefix = "GOWSFMT_"

// envVar binds one environment variable (without prefix) to a config field.
type envVar struct {
	name        string
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringVar(name, description string, field func(*config.Config) *string) envVar {
	return envVar{name, description, func(cfg *config.Config, value string) error {
		*field(cfg) = value
		return nil
	}}
}

func boolVar(name, description string, field func(*config.Config) **bool) envVar {
	return envVar{name, description, func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s%s: %q (expected true/false/1/0)", envVarPrefix, name, value)
		}
		*field(cfg) = config.Bool(b)
		return nil
	}}
}

func intVar(name, description string, field func(*config.Config) **int) envVar {
	return envVar{name, description, func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s%s: %q", envVarPrefix, name, value)
		}
		*field(cfg) = config.Int(i)
		return nil
	}}
}

func sliceVar(name, description string, field func(*config.Config) *[]string) envVar {
	return envVar{name, description, func(cfg *config.Config, value string) error {
		*field(cfg) = parseSliceValue(value)
		return nil
	}}
}

// envVars lists the supported variables in the order they are applied.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	stringVar("NEW_LINE_MARKER", "Line terminator: auto, linux, macos or windows",
		func(c *config.Config) *string { return &c.Whitespace.NewLineMarker }),
	boolVar("ADD_NEW_LINE_MARKER_AT_END_OF_FILE", "Terminate the last line",
		func(c *config.Config) **bool { return &c.Whitespace.AddNewLineMarkerAtEndOfFile }),
	boolVar("REMOVE_NEW_LINE_MARKER_FROM_END_OF_FILE", "Strip the terminator from the last line",
		func(c *config.Config) **bool { return &c.Whitespace.RemoveNewLineMarkerFromEndOfFile }),
	boolVar("NORMALIZE_NEW_LINE_MARKERS", "Rewrite every line terminator",
		func(c *config.Config) **bool { return &c.Whitespace.NormalizeNewLineMarkers }),
	boolVar("REMOVE_TRAILING_WHITESPACE", "Strip whitespace at the end of each line",
		func(c *config.Config) **bool { return &c.Whitespace.RemoveTrailingWhitespace }),
	boolVar("REMOVE_LEADING_EMPTY_LINES", "Drop empty lines at the start of the file",
		func(c *config.Config) **bool { return &c.Whitespace.RemoveLeadingEmptyLines }),
	boolVar("REMOVE_TRAILING_EMPTY_LINES", "Drop empty lines at the end of the file",
		func(c *config.Config) **bool { return &c.Whitespace.RemoveTrailingEmptyLines }),
	intVar("REPLACE_TABS_WITH_SPACES", "Tab width; 0 removes tabs, negative leaves them",
		func(c *config.Config) **int { return &c.Whitespace.ReplaceTabsWithSpaces }),
	stringVar("NORMALIZE_NON_STANDARD_WHITESPACE", "Vertical tab and form feed: ignore, replace or remove",
		func(c *config.Config) *string { return &c.Whitespace.NormalizeNonStandardWhitespace }),
	stringVar("NORMALIZE_EMPTY_FILES", "Empty files: ignore, empty or one-line",
		func(c *config.Config) *string { return &c.Whitespace.NormalizeEmptyFiles }),
	stringVar("NORMALIZE_WHITESPACE_ONLY_FILES", "Whitespace-only files: ignore, empty or one-line",
		func(c *config.Config) *string { return &c.Whitespace.NormalizeWhitespaceOnlyFiles }),
	sliceVar("IGNORE", "Comma-separated list of ignore globs",
		func(c *config.Config) *[]string { return &c.Ignore }),
	sliceVar("EXCLUDE", "Comma-separated list of exclude regular expressions",
		func(c *config.Config) *[]string { return &c.Exclude }),
	boolVar("FOLLOW_SYMLINKS", "Follow symbolic links: true or false",
		func(c *config.Config) **bool { return &c.FollowSymlinks }),
	boolVar("HIDDEN", "Include dot files and directories: true or false",
		func(c *config.Config) **bool { return &c.Hidden }),
	boolVar("SKIP_VENDORED", "Skip vendored trees: true or false",
		func(c *config.Config) **bool { return &c.SkipVendored }),
	boolVar("SKIP_GENERATED", "Skip generated files: true or false",
		func(c *config.Config) **bool { return &c.SkipGenerated }),
	{"JOBS", "Number of parallel workers (0 = auto)", func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %sJOBS: %q", envVarPrefix, value)
		}
		cfg.Jobs = i
		return nil
	}},
	{"FORMAT", "Output format: text, json, sarif, diff or summary", func(cfg *config.Config, value string) error {
		cfg.Format = config.OutputFormat(value)
		return nil
	}},
	{"CHECK_ONLY", "Report without writing: true or false", func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sCHECK_ONLY: %q (expected true/false/1/0)", envVarPrefix, value)
		}
		cfg.CheckOnly = b
		return nil
	}},
	boolVar("BACKUPS_ENABLED", "Back up rewritten files: true or false",
		func(c *config.Config) **bool { return &c.Backups.Enabled }),
	stringVar("BACKUPS_MODE", "Backup mode: sidecar or none",
		func(c *config.Config) *string { return &c.Backups.Mode }),
	{"NO_BACKUPS", "Disable backups for this run: true or false", func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sNO_BACKUPS: %q (expected true/false/1/0)", envVarPrefix, value)
		}
		cfg.NoBackups = b
		return nil
	}},
}

// LoadFromEnv applies GOWSFMT_* environment variable overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envVars {
		value := getenv(envVarPrefix + v.name)
		if value == "" {
			continue
		}

		if err := v.apply(cfg, value); err != nil {
			return err
		}
	}

	return nil
}

// parseSliceValue splits a comma-separated list, dropping empty elements.
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

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables in application
// order.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envVars))
	for _, v := range envVars {
		vars = append(vars, EnvVar{Name: envVarPrefix + v.name, Description: v.description})
	}
	return vars
}
