package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gowsfmt/pkg/diff"
	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

// FormatChange formats a single change event for terminal output:
//
//	path:line  message  (kind)
//
// File-level events omit the line number.
func (s *Styles) FormatChange(path string, event whitespace.ChangeEvent, checkOnly bool) string {
	location := s.FilePath.Render(path)
	if event.Line != whitespace.FileLevel {
		location += s.Location.Render(fmt.Sprintf(":%d", event.Line))
	}

	return fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Message.Render(event.Message(checkOnly)),
		s.Kind.Render("("+event.Kind.String()+")"),
	)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, changeCount int, checkOnly bool) string {
	header := s.FilePath.Render(path)
	if changeCount == 0 {
		return header
	}

	noun := "changes"
	if changeCount == 1 {
		noun = "change"
	}

	status := "formatted"
	if checkOnly {
		status = "needs formatting"
	}

	return header + s.Dim.Render(fmt.Sprintf(" (%s, %d %s)", status, changeCount, noun))
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatDiffLine renders one hunk line with visible whitespace markers.
func (s *Styles) FormatDiffLine(line diff.Line) string {
	prefix := line.Kind.Prefix()
	text := line.Visible()

	switch line.Kind {
	case diff.LineAdd:
		return s.DiffAdd.Render(prefix + text)
	case diff.LineRemove:
		return s.DiffRemove.Render(prefix + text)
	case diff.LineContext:
		return s.DiffContext.Render(prefix + text)
	default:
		return prefix + text
	}
}

// FormatKindLegend lists the change kinds with their descriptions, one per
// line, aligned on the kind name.
func (s *Styles) FormatKindLegend() string {
	kinds := whitespace.AllChangeKinds()

	width := 0
	for _, k := range kinds {
		width = max(width, Width(k.String()))
	}

	var b strings.Builder
	for _, k := range kinds {
		b.WriteString("  ")
		b.WriteString(s.Kind.Render(PadRight(k.String(), width)))
		b.WriteString("  ")
		b.WriteString(k.Description())
		b.WriteByte('\n')
	}

	return b.String()
}
