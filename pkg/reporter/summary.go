package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gowsfmt/internal/ui/pretty"
	"github.com/yaklabco/gowsfmt/pkg/runner"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

// Table layout for summary output. Both tables share one width.
const (
	tableWidth     = 80
	kindColWidth   = 34
	fileColWidth   = 56
	numColWidth    = 8
	statusColWidth = 14
)

// SummaryReporter formats results as aggregated tables: changes per kind,
// then changes per file, then totals.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

type fileRow struct {
	path    string
	changes int
	status  string
	failed  bool
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		return 0, nil
	}

	rows := r.fileRows(result)
	if len(rows) == 0 {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, result.CheckOnly))
		return 0, nil
	}

	if result.Stats.ChangesTotal > 0 {
		r.renderKindTable(result.Stats)
		fmt.Fprintln(r.bw)
	}

	r.renderFileTable(rows)
	fmt.Fprintln(r.bw)

	fmt.Fprint(r.bw, r.styles.Bold.Render("Total: ")+r.styles.FormatSummaryOneLine(result.Stats, result.CheckOnly))

	return result.Stats.ChangesTotal, nil
}

// fileRows lists the files worth a row: changed or failed, most changes
// first.
func (r *SummaryReporter) fileRows(result *runner.Result) []fileRow {
	var rows []fileRow

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		switch {
		case file.Error != nil:
			rows = append(rows, fileRow{path: path, status: "error", failed: true})
		case file.Result.NeedsFormatting():
			status := "formatted"
			if !file.Result.Written {
				status = "unformatted"
			}
			rows = append(rows, fileRow{path: path, changes: len(file.Result.Events), status: status})
		}
	}

	slices.SortStableFunc(rows, func(a, b fileRow) int {
		if c := cmp.Compare(b.changes, a.changes); c != 0 {
			return c
		}
		return cmp.Compare(a.path, b.path)
	})

	return rows
}

func (r *SummaryReporter) separator() {
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryReporter) renderKindTable(stats runner.Stats) {
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Changes by Kind"))
	r.separator()

	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.Render(pretty.PadRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Count", numColWidth)),
		r.styles.TableHeader.Render("Description"),
	)
	r.separator()

	type kindRow struct {
		kind  whitespace.ChangeKind
		count int
	}

	var kinds []kindRow
	for _, kind := range whitespace.AllChangeKinds() {
		if n := stats.ChangesByKind[kind]; n > 0 {
			kinds = append(kinds, kindRow{kind, n})
		}
	}
	slices.SortStableFunc(kinds, func(a, b kindRow) int {
		return cmp.Compare(b.count, a.count)
	})

	for _, row := range kinds {
		fmt.Fprintf(r.bw, "%s %s %s\n",
			r.styles.Kind.Render(pretty.PadRight(row.kind.String(), kindColWidth)),
			pretty.PadLeft(strconv.Itoa(row.count), numColWidth),
			r.styles.Dim.Render(row.kind.Description()),
		)
	}
}

func (r *SummaryReporter) renderFileTable(rows []fileRow) {
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Files"))
	r.separator()

	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.Render(pretty.PadRight("File", fileColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Changes", numColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Status", statusColWidth)),
	)
	r.separator()

	for _, row := range rows {
		path := pretty.PadRight(pretty.TruncateLeft(row.path, fileColWidth), fileColWidth)
		status := pretty.PadLeft(row.status, statusColWidth)

		switch {
		case row.failed:
			path = r.styles.Error.Render(path)
			status = r.styles.Error.Render(status)
		case row.status == "unformatted":
			status = r.styles.Warning.Render(status)
		default:
			status = r.styles.Success.Render(status)
		}

		fmt.Fprintf(r.bw, "%s %s %s\n",
			path,
			pretty.PadLeft(strconv.Itoa(row.changes), numColWidth),
			status,
		)
	}
}
