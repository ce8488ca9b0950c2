// Package whitespace normalizes whitespace conventions in text files:
// line terminators, trailing whitespace, leading and trailing empty lines,
// tabs, vertical tabs and form feeds, and empty or whitespace-only files.
//
// Formatting is idempotent: running Format on its own output with the same
// Configuration never changes it again.
package whitespace

import (
	"bytes"
	"cmp"
	"slices"
)

// Outcome is the result of formatting one file.
type Outcome struct {
	// Bytes is the formatted content. When Changed is false it is the input
	// slice itself.
	Bytes []byte

	// Changed reports whether Bytes differs from the input.
	Changed bool

	// Events lists the modifications, ordered by line with file-level
	// events first. It is empty when Changed is false.
	Events []ChangeEvent
}

// Format applies cfg to input.
func Format(cfg Configuration, input []byte) Outcome {
	output, events := apply(cfg, input)
	return Detect(input, output, events)
}

// Detect compares input and output and reconciles the event list with the
// comparison: an unchanged file never reports events.
func Detect(input, output []byte, events []ChangeEvent) Outcome {
	if bytes.Equal(input, output) {
		return Outcome{Bytes: input}
	}

	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b ChangeEvent) int {
		return cmp.Compare(a.Line, b.Line)
	})

	return Outcome{Bytes: output, Changed: true, Events: sorted}
}

// CountByKind tallies the events by kind.
func (o Outcome) CountByKind() map[ChangeKind]int {
	counts := make(map[ChangeKind]int, len(o.Events))
	for _, e := range o.Events {
		counts[e.Kind]++
	}

	return counts
}
