// Package reporter renders runner results as terminal text, JSON, SARIF,
// unified diffs or summary tables.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gowsfmt/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of changes reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.ToolVersion == "" {
		opts.ToolVersion = DefaultOptions().ToolVersion
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
