package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gowsfmt/pkg/runner"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "7 changes in 3 files need formatting (12 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, checkOnly bool) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	var parts []string

	switch {
	case stats.FilesChanged == 0:
		parts = append(parts, s.Success.Render("All files formatted")+checked)
	case checkOnly:
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s in %d %s need formatting",
			stats.ChangesTotal, plural(stats.ChangesTotal, "change", "changes"),
			stats.FilesChanged, plural(stats.FilesChanged, wordFile, wordFiles)))+checked)
	default:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s applied to %d %s",
			stats.ChangesTotal, plural(stats.ChangesTotal, "change", "changes"),
			stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles)))+checked)
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.FilesErrored, plural(stats.FilesErrored, "error", "errors"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, checkOnly bool) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value string) {
		builder.WriteString("  " + PadRight(label+":", 20) + value + "\n")
	}

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))

	if stats.FilesChanged > 0 {
		label := "Files changed"
		if checkOnly {
			label = "Files to format"
		}
		row(label, s.Failure.Render(strconv.Itoa(stats.FilesChanged)))
	}
	if stats.FilesWritten > 0 {
		row("Files written", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
	}
	if stats.BackupsCreated > 0 {
		row("Backups created", s.SummaryValue.Render(strconv.Itoa(stats.BackupsCreated)))
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files with errors", s.Error.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")
	row("Total changes", s.SummaryValue.Render(strconv.Itoa(stats.ChangesTotal)))

	for _, kind := range whitespace.AllChangeKinds() {
		if n := stats.ChangesByKind[kind]; n > 0 {
			builder.WriteString("    " + PadRight(kind.String(), 34) + s.SummaryValue.Render(strconv.Itoa(n)) + "\n")
		}
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed for some files"))
	case checkOnly && stats.FilesChanged > 0:
		builder.WriteString(s.Failure.Render("Some files need formatting"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
