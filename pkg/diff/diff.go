// Package diff renders unified diffs between a file and its formatted
// version. Lines are compared together with their terminators, so a
// CRLF-to-LF change or a removed trailing space shows up as a changed line.
package diff

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gowsfmt/pkg/whitespace"
)

// Diff is a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk is a contiguous group of changes with surrounding context.
type Hunk struct {
	// OriginalStart is the 1-based first line of the hunk in the original.
	OriginalStart int

	// OriginalCount is the number of original lines in the hunk.
	OriginalCount int

	// ModifiedStart is the 1-based first line of the hunk in the modified.
	ModifiedStart int

	// ModifiedCount is the number of modified lines in the hunk.
	ModifiedCount int

	// Lines holds the hunk body.
	Lines []Line
}

// LineKind tells whether a diff line is context, added or removed.
type LineKind int

const (
	// LineContext is an unchanged line.
	LineContext LineKind = iota

	// LineAdd is a line present only in the modified content.
	LineAdd

	// LineRemove is a line present only in the original content.
	LineRemove
)

// Prefix returns the unified diff marker for the kind.
func (k LineKind) Prefix() string {
	switch k {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	default:
		return " "
	}
}

// Line is a single line of a hunk.
type Line struct {
	Kind       LineKind
	Content    string
	Terminator whitespace.Newline
}

// ContextLines is the number of unchanged lines shown around each change.
const ContextLines = 3

// Generate returns the diff between original and modified, or nil when they
// are identical.
func Generate(path string, original, modified []byte) *Diff {
	orig := toLines(original)
	mod := toLines(modified)

	ops := editScript(orig, mod)

	changed := false
	for _, op := range ops {
		if op.Kind != LineContext {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	d := &Diff{Path: path, Hunks: group(ops)}
	for _, h := range d.Hunks {
		for _, l := range h.Lines {
			switch l.Kind {
			case LineAdd:
				d.Additions++
			case LineRemove:
				d.Deletions++
			case LineContext:
			}
		}
	}

	return d
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}

	p := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", p, p)
}

// Header returns the "@@ -a,b +c,d @@" line for h.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// String renders the diff with the lines' original terminators, so the
// output applies as a patch. Lines without a terminator are followed by the
// "\ No newline at end of file" marker.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	p := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", p)
	fmt.Fprintf(&b, "+++ b/%s\n", p)

	for _, h := range d.Hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')

		for _, l := range h.Lines {
			b.WriteString(l.Kind.Prefix())
			b.WriteString(l.Content)

			if l.Terminator == whitespace.NewlineNone {
				b.WriteString("\n\\ No newline at end of file\n")
				continue
			}
			b.Write(l.Terminator.Bytes())
		}
	}

	return b.String()
}

// FullString returns the git header followed by String.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}

	return d.GitHeader() + "\n" + d.String()
}

// Visible renders the line for display: tabs, vertical tabs, form feeds and
// trailing spaces become visible glyphs and the terminator is spelled out.
func (l Line) Visible() string {
	var b strings.Builder

	trimmed := strings.TrimRight(l.Content, " ")
	for _, r := range trimmed {
		switch r {
		case '\t':
			b.WriteString("→")
		case '\v':
			b.WriteString("␋")
		case '\f':
			b.WriteString("␌")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(strings.Repeat("·", len(l.Content)-len(trimmed)))

	switch l.Terminator {
	case whitespace.NewlineLF:
		b.WriteString("␊")
	case whitespace.NewlineCR:
		b.WriteString("␍")
	case whitespace.NewlineCRLF:
		b.WriteString("␍␊")
	case whitespace.NewlineNone:
	}

	return b.String()
}

func toLines(content []byte) []Line {
	parsed := whitespace.Split(content)

	lines := make([]Line, len(parsed.Lines))
	for i, l := range parsed.Lines {
		lines[i] = Line{Content: string(l.Content), Terminator: l.Terminator}
	}

	return lines
}

func sameLine(a, b Line) bool {
	return a.Content == b.Content && a.Terminator == b.Terminator
}

// editScript computes a shortest edit script from the longest common
// subsequence table. Removals are emitted before additions within a change.
func editScript(orig, mod []Line) []Line {
	n, m := len(orig), len(mod)

	// lcs[i][j] is the LCS length of orig[i:] and mod[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if sameLine(orig[i], mod[j]) {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && sameLine(orig[i], mod[j]):
			ops = append(ops, Line{Kind: LineContext, Content: orig[i].Content, Terminator: orig[i].Terminator})
			i++
			j++
		case i < n && (j == m || lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, Line{Kind: LineRemove, Content: orig[i].Content, Terminator: orig[i].Terminator})
			i++
		default:
			ops = append(ops, Line{Kind: LineAdd, Content: mod[j].Content, Terminator: mod[j].Terminator})
			j++
		}
	}

	return ops
}

// group splits an edit script into hunks, merging changes separated by at
// most 2*ContextLines unchanged lines.
func group(ops []Line) []Hunk {
	type span struct{ start, end int }

	var spans []span
	for i := 0; i < len(ops); {
		if ops[i].Kind == LineContext {
			i++
			continue
		}

		start := i
		for i < len(ops) && ops[i].Kind != LineContext {
			i++
		}

		if len(spans) > 0 && start-spans[len(spans)-1].end <= 2*ContextLines {
			spans[len(spans)-1].end = i
			continue
		}
		spans = append(spans, span{start, i})
	}

	hunks := make([]Hunk, 0, len(spans))
	for _, s := range spans {
		hunks = append(hunks, buildHunk(ops, max(0, s.start-ContextLines), min(len(ops), s.end+ContextLines)))
	}

	return hunks
}

func buildHunk(ops []Line, start, end int) Hunk {
	h := Hunk{OriginalStart: 1, ModifiedStart: 1}

	for _, op := range ops[:start] {
		if op.Kind != LineAdd {
			h.OriginalStart++
		}
		if op.Kind != LineRemove {
			h.ModifiedStart++
		}
	}

	h.Lines = append(h.Lines, ops[start:end]...)
	for _, op := range h.Lines {
		switch op.Kind {
		case LineContext:
			h.OriginalCount++
			h.ModifiedCount++
		case LineRemove:
			h.OriginalCount++
		case LineAdd:
			h.ModifiedCount++
		}
	}

	// Unified diff convention: an empty side starts at the line before.
	if h.OriginalCount == 0 {
		h.OriginalStart--
	}
	if h.ModifiedCount == 0 {
		h.ModifiedStart--
	}

	return h
}
