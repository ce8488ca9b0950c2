package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatSARIF, FormatDiff, FormatSummary}
}

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}

	f := Format(formatStr)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, sarif, diff, summary", formatStr)
	}

	return f, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}
