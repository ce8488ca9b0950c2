package whitespace

import "bytes"

// Line is one line of a file: its content and the terminator that ended it.
// Content never contains '\r' or '\n'.
type Line struct {
	Content    []byte
	Terminator Newline
}

// WithContent returns a copy of l with new content.
func (l Line) WithContent(content []byte) Line {
	return Line{Content: content, Terminator: l.Terminator}
}

// WithTerminator returns a copy of l with a new terminator.
func (l Line) WithTerminator(n Newline) Line {
	return Line{Content: l.Content, Terminator: n}
}

// IsEmpty reports whether the line has no content.
func (l Line) IsEmpty() bool {
	return len(l.Content) == 0
}

// Len returns the number of bytes the line occupies when serialized.
func (l Line) Len() int {
	return len(l.Content) + len(l.Terminator.Bytes())
}

// ParsedFile is the line structure of a file.
type ParsedFile struct {
	// Lines holds every line in order. Only the last line may have
	// terminator NewlineNone.
	Lines []Line

	// Counts tallies the terminators seen while splitting.
	Counts NewlineCounts
}

// Split breaks input into lines. "\r\n" is a single terminator; a lone
// '\r' or '\n' is a terminator of its own. Trailing bytes without a
// terminator form a final line with NewlineNone. Empty input yields no lines.
//
// Line contents alias input.
func Split(input []byte) ParsedFile {
	var parsed ParsedFile

	if len(input) == 0 {
		return parsed
	}

	parsed.Lines = make([]Line, 0, bytes.Count(input, bytesLF)+1)

	start := 0
	for i := 0; i < len(input); i++ {
		var term Newline

		switch input[i] {
		case '\n':
			term = NewlineLF
		case '\r':
			term = NewlineCR
			if i+1 < len(input) && input[i+1] == '\n' {
				term = NewlineCRLF
			}
		default:
			continue
		}

		parsed.Lines = append(parsed.Lines, Line{Content: input[start:i:i], Terminator: term})
		parsed.Counts.add(term)

		if term == NewlineCRLF {
			i++
		}
		start = i + 1
	}

	if start < len(input) {
		parsed.Lines = append(parsed.Lines, Line{Content: input[start:len(input):len(input)], Terminator: NewlineNone})
	}

	return parsed
}

// Bytes serializes the lines back into a byte slice.
func (p ParsedFile) Bytes() []byte {
	return Join(p.Lines)
}

// Join concatenates each line's content and terminator.
func Join(lines []Line) []byte {
	size := 0
	for _, l := range lines {
		size += l.Len()
	}

	out := make([]byte, 0, size)
	for _, l := range lines {
		out = append(out, l.Content...)
		out = append(out, l.Terminator.Bytes()...)
	}

	return out
}
