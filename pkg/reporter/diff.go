package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gowsfmt/internal/ui/pretty"
	"github.com/yaklabco/gowsfmt/pkg/diff"
	"github.com/yaklabco/gowsfmt/pkg/runner"
)

// DiffReporter formats results as unified diffs.
//
// Without color the output is a plain patch that reproduces the formatting
// when applied: lines keep their original terminators. With color the
// whitespace that changed is made visible instead.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	color  bool
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		color:  colorEnabled,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of files with a diff.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, file := range result.Files {
		if file.Error != nil {
			// Errors go into the patch as comments only when colored;
			// a plain patch must stay applicable.
			if r.color {
				fmt.Fprint(r.bw, r.styles.FormatFileError(displayPath(r.opts.WorkingDir, file.Path), file.Error))
			}
			continue
		}

		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		d := *file.Result.Diff
		d.Path = displayPath(r.opts.WorkingDir, d.Path)

		filesWithDiffs++
		totalAdditions += d.Additions
		totalDeletions += d.Deletions

		if r.color {
			r.writeColored(&d)
		} else {
			fmt.Fprint(r.bw, d.FullString())
		}
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary && r.color {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

func (r *DiffReporter) writeColored(d *diff.Diff) {
	path := strings.TrimPrefix(d.Path, "/")

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(d.GitHeader()))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, h := range d.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(h.Header()))
		for _, line := range h.Lines {
			fmt.Fprintln(r.bw, r.styles.FormatDiffLine(line))
		}
	}

	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions"))))
	}

	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
