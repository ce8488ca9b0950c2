package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output: "auto" (default), "always" or
	// "never".
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile prints a header per file followed by its changes.
	// Otherwise every change is printed on its own line.
	GroupByFile bool

	// Compact uses minified output where applicable.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// ToolVersion is reported in machine-readable output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		GroupByFile: true,
		ToolVersion: "dev",
	}
}

// displayPath returns path relative to workingDir with forward slashes.
// Paths outside workingDir are returned unchanged.
func displayPath(workingDir, path string) string {
	if workingDir == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}

	rel, err := filepath.Rel(workingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}

	return filepath.ToSlash(rel)
}
