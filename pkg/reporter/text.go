package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gowsfmt/internal/ui/pretty"
	"github.com/yaklabco/gowsfmt/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		}
		return 0, nil
	}

	var total int

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}

		fr := file.Result
		if fr == nil {
			continue
		}

		// Binary and generated files are skipped silently; a file that
		// changed underneath us is worth a warning.
		if fr.Skipped {
			if fr.SkipReason == runner.SkipModified {
				fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Warning.Render("skipped: "+fr.SkipReason))
			}
			continue
		}

		if len(fr.Events) == 0 {
			continue
		}

		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(fr.Events), result.CheckOnly))
		}

		for _, event := range fr.Events {
			fmt.Fprint(r.bw, r.styles.FormatChange(path, event, result.CheckOnly))
			total++
		}

		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, result.CheckOnly))
	}

	return total, nil
}
