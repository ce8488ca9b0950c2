package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gowsfmt/pkg/config"
	"github.com/yaklabco/gowsfmt/pkg/fsutil"
	"github.com/yaklabco/gowsfmt/pkg/runner"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "whitespace.new_line_marker").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the first error, or nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &r.Errors[0]
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, err error) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: err.Error(), Err: err})
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatSARIF:   true,
	config.FormatDiff:    true,
	config.FormatSummary: true,
}

// Validate checks a configuration for errors and warnings. Besides the
// field checks it builds the engine configuration, so option combinations
// that cannot be applied are reported too.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, sarif, diff, summary", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if _, err := fsutil.ParseBackupMode(cfg.Backups.Mode); err != nil {
		result.addError("backups.mode", cfg.Backups.Mode, err)
	}

	if err := runner.ValidatePatterns(cfg.Ignore, nil); err != nil {
		result.addError("ignore", cfg.Ignore, err)
	}
	if err := runner.ValidatePatterns(nil, cfg.Exclude); err != nil {
		result.addError("exclude", cfg.Exclude, err)
	}

	validateWhitespace(cfg, result)

	if cfg.Backups.Mode == string(fsutil.BackupModeNone) && cfg.Backups.Enabled != nil && *cfg.Backups.Enabled {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "backups",
			Message: "backups are enabled but mode is none; no backups will be written",
		})
	}

	return result
}

// validateWhitespace reports unknown mode names per field, then option
// combinations the engine rejects.
func validateWhitespace(cfg *config.Config, result *ValidationResult) {
	ws := cfg.Whitespace

	fields := []struct {
		name  string
		value string
		parse func(string) error
	}{
		{"whitespace.new_line_marker", ws.NewLineMarker, func(s string) error {
			_, err := whitespace.ParseNewlineMode(s)
			return err
		}},
		{"whitespace.normalize_non_standard_whitespace", ws.NormalizeNonStandardWhitespace, func(s string) error {
			_, err := whitespace.ParseNonStandardMode(s)
			return err
		}},
		{"whitespace.normalize_empty_files", ws.NormalizeEmptyFiles, func(s string) error {
			_, err := whitespace.ParseTrivialFileMode(whitespace.OptionEmptyFiles, s)
			return err
		}},
		{"whitespace.normalize_whitespace_only_files", ws.NormalizeWhitespaceOnlyFiles, func(s string) error {
			_, err := whitespace.ParseTrivialFileMode(whitespace.OptionWhitespaceOnlyFiles, s)
			return err
		}},
	}

	var invalid bool
	for _, f := range fields {
		if err := f.parse(f.value); err != nil {
			result.addError(f.name, f.value, err)
			invalid = true
		}
	}

	if invalid {
		return
	}

	if _, err := cfg.Configuration(); err != nil {
		result.addError("whitespace", nil, err)
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
