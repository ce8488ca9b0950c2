package whitespace

import (
	"bytes"
	"fmt"
	"strconv"
)

// numberedLine is a line tagged with its 1-based position in the input.
type numberedLine struct {
	Line

	number int
}

// pipeline carries the state of one formatting run.
type pipeline struct {
	cfg    Configuration
	target Newline
	lines  []numberedLine
	events []ChangeEvent
}

func (p *pipeline) record(line int, kind ChangeKind, detail string) {
	p.events = append(p.events, ChangeEvent{Line: line, Kind: kind, Detail: detail})
}

// apply runs the trivial-file overrides or the ordered line stages and
// returns the output bytes with the events that produced them. The events
// are not yet reconciled against the output.
func apply(cfg Configuration, input []byte) ([]byte, []ChangeEvent) {
	parsed := Split(input)
	target := ResolveNewline(cfg.newlineMode, parsed.Counts)

	if len(input) == 0 {
		if cfg.emptyFiles != TrivialFileOneLine {
			return input, nil
		}

		return bytes.Clone(target.Bytes()), []ChangeEvent{{Line: FileLevel, Kind: EmptyFileNormalized}}
	}

	if isWhitespaceOnly(input) {
		var out []byte

		switch cfg.whitespaceOnlyFiles {
		case TrivialFileIgnore:
			return input, nil
		case TrivialFileEmpty:
			out = []byte{}
		case TrivialFileOneLine:
			out = bytes.Clone(target.Bytes())
		}

		return out, []ChangeEvent{{
			Line:   FileLevel,
			Kind:   WhitespaceOnlyFileNormalized,
			Detail: cfg.whitespaceOnlyFiles.String(),
		}}
	}

	if !cfg.modifiesLines() {
		return input, nil
	}

	p := &pipeline{
		cfg:    cfg,
		target: target,
		lines:  make([]numberedLine, len(parsed.Lines)),
	}
	for i, l := range parsed.Lines {
		p.lines[i] = numberedLine{Line: l, number: i + 1}
	}

	p.replaceTabs()
	p.normalizeNonStandard()
	p.trimTrailingWhitespace()
	p.dropEmptyUnterminatedTail()
	p.removeLeadingEmptyLines()
	p.removeTrailingEmptyLines()
	p.normalizeNewlines()
	p.fixEndOfFile()

	if len(p.events) == 0 {
		return input, nil
	}

	return p.serialize(), p.events
}

func (p *pipeline) replaceTabs() {
	width := p.cfg.tabWidth
	if width < 0 {
		return
	}

	kind := TabsReplaced
	if width == 0 {
		kind = TabsRemoved
	}
	spaces := bytes.Repeat([]byte{' '}, width)

	for i, l := range p.lines {
		if bytes.IndexByte(l.Content, '\t') < 0 {
			continue
		}

		out := make([]byte, 0, len(l.Content)+width*bytes.Count(l.Content, []byte{'\t'}))
		for _, b := range l.Content {
			if b != '\t' {
				out = append(out, b)
				continue
			}

			out = append(out, spaces...)
			p.record(l.number, kind, "")
		}

		p.lines[i].Line = l.WithContent(out)
	}
}

func (p *pipeline) normalizeNonStandard() {
	mode := p.cfg.nonStandard
	if mode == NonStandardIgnore {
		return
	}

	kind := NonStandardWhitespaceReplaced
	if mode == NonStandardRemove {
		kind = NonStandardWhitespaceRemoved
	}

	for i, l := range p.lines {
		if bytes.IndexAny(l.Content, "\v\f") < 0 {
			continue
		}

		out := make([]byte, 0, len(l.Content))
		for _, b := range l.Content {
			if b != '\v' && b != '\f' {
				out = append(out, b)
				continue
			}

			if mode == NonStandardReplace {
				out = append(out, ' ')
			}
			p.record(l.number, kind, escapeByte(b))
		}

		p.lines[i].Line = l.WithContent(out)
	}
}

func (p *pipeline) trimTrailingWhitespace() {
	if !p.cfg.trailingWhitespace {
		return
	}

	for i, l := range p.lines {
		trimmed := bytes.TrimRight(l.Content, trailingSpace)
		if len(trimmed) == len(l.Content) {
			continue
		}

		p.lines[i].Line = l.WithContent(trimmed)
		p.record(l.number, TrailingWhitespaceRemoved, "")
	}
}

// dropEmptyUnterminatedTail removes a final line that serializes to nothing,
// so the EOF stage sees the last real line.
func (p *pipeline) dropEmptyUnterminatedTail() {
	n := len(p.lines)
	if n == 0 {
		return
	}

	last := p.lines[n-1]
	if last.IsEmpty() && last.Terminator == NewlineNone {
		p.lines = p.lines[:n-1]
	}
}

func (p *pipeline) removeLeadingEmptyLines() {
	if !p.cfg.leadingEmptyLines {
		return
	}

	n := 0
	for n < len(p.lines) && p.lines[n].IsEmpty() {
		n++
	}

	if n == 0 {
		return
	}

	p.record(p.lines[0].number, LeadingEmptyLineRemoved, strconv.Itoa(n))
	p.lines = p.lines[n:]
}

func (p *pipeline) removeTrailingEmptyLines() {
	if !p.cfg.trailingEmptyLines {
		return
	}

	end := len(p.lines)
	for end > 0 && p.lines[end-1].IsEmpty() {
		end--
	}

	if end == len(p.lines) {
		return
	}

	p.record(p.lines[end].number, TrailingEmptyLineRemoved, strconv.Itoa(len(p.lines)-end))
	p.lines = p.lines[:end]
}

func (p *pipeline) normalizeNewlines() {
	if !p.cfg.normalizeNewlines {
		return
	}

	for i, l := range p.lines {
		if l.Terminator == NewlineNone || l.Terminator == p.target {
			continue
		}

		p.record(l.number, NewlineMarkerNormalized, fmt.Sprintf("'%s' -> '%s'", l.Terminator, p.target))
		p.lines[i].Line = l.WithTerminator(p.target)
	}
}

func (p *pipeline) fixEndOfFile() {
	n := len(p.lines)
	if n == 0 {
		return
	}

	last := p.lines[n-1]

	switch {
	case p.cfg.addEOF && last.Terminator == NewlineNone:
		p.lines[n-1].Line = last.WithTerminator(p.target)
		p.record(last.number, EndOfFileMarkerAdded, "")
	case p.cfg.removeEOF && last.Terminator != NewlineNone:
		p.lines[n-1].Line = last.WithTerminator(NewlineNone)
		p.record(last.number, EndOfFileMarkerRemoved, "")
	}
}

func (p *pipeline) serialize() []byte {
	lines := make([]Line, len(p.lines))
	for i, l := range p.lines {
		lines[i] = l.Line
	}

	return Join(lines)
}

// trailingSpace is the set stripped from line ends.
const trailingSpace = " \t\v\f"

// isWhitespaceOnly reports whether every byte is a space, tab, '\v', '\f',
// '\r' or '\n'.
func isWhitespaceOnly(input []byte) bool {
	for _, b := range input {
		switch b {
		case ' ', '\t', '\v', '\f', '\r', '\n':
		default:
			return false
		}
	}

	return true
}

func escapeByte(b byte) string {
	switch b {
	case '\v':
		return `\v`
	case '\f':
		return `\f`
	default:
		return string(rune(b))
	}
}
