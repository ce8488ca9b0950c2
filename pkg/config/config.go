// Package config defines the gowsfmt configuration file model. The types are
// plain data; loading, layering and validation live in internal/configloader.
package config

import (
	"fmt"
	"runtime"

	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// WhitespaceConfig holds the formatting options. Unset fields fall through to
// lower-precedence sources and finally to the defaults, which change nothing.
type WhitespaceConfig struct {
	// NewLineMarker is auto, linux, macos or windows.
	NewLineMarker string `yaml:"new_line_marker,omitempty" toml:"new_line_marker,omitempty"`

	AddNewLineMarkerAtEndOfFile      *bool `yaml:"add_new_line_marker_at_end_of_file,omitempty" toml:"add_new_line_marker_at_end_of_file,omitempty"`
	RemoveNewLineMarkerFromEndOfFile *bool `yaml:"remove_new_line_marker_from_end_of_file,omitempty" toml:"remove_new_line_marker_from_end_of_file,omitempty"`
	NormalizeNewLineMarkers          *bool `yaml:"normalize_new_line_markers,omitempty" toml:"normalize_new_line_markers,omitempty"`
	RemoveTrailingWhitespace         *bool `yaml:"remove_trailing_whitespace,omitempty" toml:"remove_trailing_whitespace,omitempty"`
	RemoveLeadingEmptyLines          *bool `yaml:"remove_leading_empty_lines,omitempty" toml:"remove_leading_empty_lines,omitempty"`
	RemoveTrailingEmptyLines         *bool `yaml:"remove_trailing_empty_lines,omitempty" toml:"remove_trailing_empty_lines,omitempty"`

	// ReplaceTabsWithSpaces is the tab width; 0 removes tabs and a negative
	// value leaves them alone.
	ReplaceTabsWithSpaces *int `yaml:"replace_tabs_with_spaces,omitempty" toml:"replace_tabs_with_spaces,omitempty"`

	// NormalizeNonStandardWhitespace is ignore, replace or remove.
	NormalizeNonStandardWhitespace string `yaml:"normalize_non_standard_whitespace,omitempty" toml:"normalize_non_standard_whitespace,omitempty"`

	// NormalizeEmptyFiles is ignore, empty or one-line.
	NormalizeEmptyFiles string `yaml:"normalize_empty_files,omitempty" toml:"normalize_empty_files,omitempty"`

	// NormalizeWhitespaceOnlyFiles is ignore, empty or one-line.
	NormalizeWhitespaceOnlyFiles string `yaml:"normalize_whitespace_only_files,omitempty" toml:"normalize_whitespace_only_files,omitempty"`
}

// BackupsConfig controls backups of rewritten files.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty" toml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure.
type Config struct {
	// Whitespace holds the formatting options.
	Whitespace WhitespaceConfig `yaml:"whitespace" toml:"whitespace"`

	// Ignore contains glob patterns for paths to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Exclude contains regular expressions matched against slash-separated
	// paths; a match skips the path.
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`

	// FollowSymlinks descends into symlinked directories and formats
	// symlinked files.
	FollowSymlinks *bool `yaml:"follow_symlinks,omitempty" toml:"follow_symlinks,omitempty"`

	// Hidden includes dot files and dot directories.
	Hidden *bool `yaml:"hidden,omitempty" toml:"hidden,omitempty"`

	// SkipVendored skips vendor/, node_modules/ and similar trees.
	SkipVendored *bool `yaml:"skip_vendored,omitempty" toml:"skip_vendored,omitempty"`

	// SkipGenerated skips files marked as generated.
	SkipGenerated *bool `yaml:"skip_generated,omitempty" toml:"skip_generated,omitempty"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `yaml:"jobs,omitempty" toml:"jobs,omitempty"`

	// Backups configures backups of rewritten files.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// CheckOnly reports what would change without writing.
	CheckOnly bool `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// NoBackups disables backups for this run.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Backups: BackupsConfig{
			Mode: "sidecar",
		},
		Format: FormatText,
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

func boolValue(p *bool) bool {
	return p != nil && *p
}

// FollowsSymlinks reports the effective FollowSymlinks setting.
func (c *Config) FollowsSymlinks() bool { return boolValue(c.FollowSymlinks) }

// IncludesHidden reports the effective Hidden setting.
func (c *Config) IncludesHidden() bool { return boolValue(c.Hidden) }

// SkipsVendored reports the effective SkipVendored setting.
func (c *Config) SkipsVendored() bool { return boolValue(c.SkipVendored) }

// SkipsGenerated reports the effective SkipGenerated setting.
func (c *Config) SkipsGenerated() bool { return boolValue(c.SkipGenerated) }

// BackupsEnabled reports whether rewritten files get a backup this run.
func (c *Config) BackupsEnabled() bool {
	return boolValue(c.Backups.Enabled) && !c.NoBackups && c.Backups.Mode != "none"
}

// EffectiveJobs returns the worker count, defaulting to the number of CPUs.
func (c *Config) EffectiveJobs() int {
	if c.Jobs > 0 {
		return c.Jobs
	}

	return runtime.NumCPU()
}

// FormatOptions converts the whitespace section to engine options. Unknown
// mode names return a *whitespace.ConfigError.
func (w WhitespaceConfig) FormatOptions() (whitespace.Options, error) {
	opts := whitespace.DefaultOptions()

	var err error
	if opts.NewlineMode, err = whitespace.ParseNewlineMode(w.NewLineMarker); err != nil {
		return opts, err
	}
	if opts.NonStandard, err = whitespace.ParseNonStandardMode(w.NormalizeNonStandardWhitespace); err != nil {
		return opts, err
	}
	if opts.EmptyFiles, err = whitespace.ParseTrivialFileMode(whitespace.OptionEmptyFiles, w.NormalizeEmptyFiles); err != nil {
		return opts, err
	}
	if opts.WhitespaceOnlyFiles, err = whitespace.ParseTrivialFileMode(whitespace.OptionWhitespaceOnlyFiles, w.NormalizeWhitespaceOnlyFiles); err != nil {
		return opts, err
	}

	opts.AddEOF = boolValue(w.AddNewLineMarkerAtEndOfFile)
	opts.RemoveEOF = boolValue(w.RemoveNewLineMarkerFromEndOfFile)
	opts.NormalizeNewlines = boolValue(w.NormalizeNewLineMarkers)
	opts.RemoveTrailingWhitespace = boolValue(w.RemoveTrailingWhitespace)
	opts.RemoveLeadingEmptyLines = boolValue(w.RemoveLeadingEmptyLines)
	opts.RemoveTrailingEmptyLines = boolValue(w.RemoveTrailingEmptyLines)

	if w.ReplaceTabsWithSpaces != nil {
		opts.TabWidth = *w.ReplaceTabsWithSpaces
	}

	return opts, nil
}

// Configuration validates the whitespace section and returns the engine
// configuration.
func (c *Config) Configuration() (whitespace.Configuration, error) {
	opts, err := c.Whitespace.FormatOptions()
	if err != nil {
		return whitespace.Configuration{}, err
	}

	cfg, err := whitespace.NewConfiguration(opts)
	if err != nil {
		return whitespace.Configuration{}, fmt.Errorf("whitespace options: %w", err)
	}

	return cfg, nil
}
