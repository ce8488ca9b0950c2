package whitespace

import (
	"fmt"
	"strconv"
)

// FileLevel is the line number of events that concern the whole file.
const FileLevel = 0

// ChangeKind identifies the kind of modification a stage made.
type ChangeKind int

const (
	TrailingWhitespaceRemoved ChangeKind = iota + 1
	TabsReplaced
	TabsRemoved
	NonStandardWhitespaceReplaced
	NonStandardWhitespaceRemoved
	NewlineMarkerNormalized
	LeadingEmptyLineRemoved
	TrailingEmptyLineRemoved
	EndOfFileMarkerAdded
	EndOfFileMarkerRemoved
	EmptyFileNormalized
	WhitespaceOnlyFileNormalized
)

var changeKindNames = map[ChangeKind]string{
	TrailingWhitespaceRemoved:     "trailing-whitespace",
	TabsReplaced:                  "tab-replaced",
	TabsRemoved:                   "tab-removed",
	NonStandardWhitespaceReplaced: "non-standard-whitespace-replaced",
	NonStandardWhitespaceRemoved:  "non-standard-whitespace-removed",
	NewlineMarkerNormalized:       "new-line-marker",
	LeadingEmptyLineRemoved:       "leading-empty-lines",
	TrailingEmptyLineRemoved:      "trailing-empty-lines",
	EndOfFileMarkerAdded:          "eof-marker-added",
	EndOfFileMarkerRemoved:        "eof-marker-removed",
	EmptyFileNormalized:           "empty-file",
	WhitespaceOnlyFileNormalized:  "whitespace-only-file",
}

var changeKindDescriptions = map[ChangeKind]string{
	TrailingWhitespaceRemoved:     "Trailing whitespace at the end of a line",
	TabsReplaced:                  "Tab characters replaced with spaces",
	TabsRemoved:                   "Tab characters removed",
	NonStandardWhitespaceReplaced: "Vertical tab or form feed replaced with a space",
	NonStandardWhitespaceRemoved:  "Vertical tab or form feed removed",
	NewlineMarkerNormalized:       "Line terminator differs from the configured one",
	LeadingEmptyLineRemoved:       "Empty lines at the beginning of the file",
	TrailingEmptyLineRemoved:      "Empty lines at the end of the file",
	EndOfFileMarkerAdded:          "Missing line terminator at the end of the file",
	EndOfFileMarkerRemoved:        "Line terminator at the end of the file",
	EmptyFileNormalized:           "Empty file normalized",
	WhitespaceOnlyFileNormalized:  "File containing only whitespace normalized",
}

// AllChangeKinds returns every change kind in declaration order.
func AllChangeKinds() []ChangeKind {
	kinds := make([]ChangeKind, 0, len(changeKindNames))
	for k := TrailingWhitespaceRemoved; k <= WhitespaceOnlyFileNormalized; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// String returns a stable identifier for the kind, e.g. "trailing-whitespace".
func (k ChangeKind) String() string {
	if name, ok := changeKindNames[k]; ok {
		return name
	}

	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// Description returns a short human-readable summary of the kind.
func (k ChangeKind) Description() string {
	return changeKindDescriptions[k]
}

// ChangeEvent records one modification.
type ChangeEvent struct {
	// Line is the 1-based line number in the input, or FileLevel.
	Line int

	// Kind is what changed.
	Kind ChangeKind

	// Detail carries kind-specific information: the replaced character,
	// the terminator transition or the number of lines removed.
	Detail string
}

// Message describes the event. When checkOnly is set the message says what
// would be done rather than what was done.
func (e ChangeEvent) Message(checkOnly bool) string {
	verb := " "
	if checkOnly {
		verb = " would be "
	}

	switch e.Kind {
	case TrailingWhitespaceRemoved:
		return "Trailing whitespace" + verb + "removed."
	case TabsReplaced:
		return "Tab" + verb + "replaced with spaces."
	case TabsRemoved:
		return "Tab" + verb + "removed."
	case NonStandardWhitespaceReplaced:
		return fmt.Sprintf("Non-standard whitespace character '%s'%sreplaced by a space.", e.Detail, verb)
	case NonStandardWhitespaceRemoved:
		return fmt.Sprintf("Non-standard whitespace character '%s'%sremoved.", e.Detail, verb)
	case NewlineMarkerNormalized:
		return "New line marker" + verb + "replaced: " + e.Detail + "."
	case LeadingEmptyLineRemoved:
		return "Empty line(s) at the beginning of the file" + verb + "removed" + countSuffix(e.Detail) + "."
	case TrailingEmptyLineRemoved:
		return "Empty line(s) at the end of the file" + verb + "removed" + countSuffix(e.Detail) + "."
	case EndOfFileMarkerAdded:
		return "New line marker" + verb + "added to the end of the file."
	case EndOfFileMarkerRemoved:
		return "New line marker" + verb + "removed from the end of the file."
	case EmptyFileNormalized:
		return "Empty file" + verb + "replaced with a single empty line."
	case WhitespaceOnlyFileNormalized:
		if e.Detail == TrivialFileEmpty.String() {
			return "File" + verb + "replaced with an empty file."
		}
		return "File" + verb + "replaced with a single empty line."
	default:
		return e.Kind.String()
	}
}

// Format renders the event as "line N: message", or just the message for
// file-level events.
func (e ChangeEvent) Format(checkOnly bool) string {
	if e.Line == FileLevel {
		return e.Message(checkOnly)
	}

	return fmt.Sprintf("line %d: %s", e.Line, e.Message(checkOnly))
}

func countSuffix(detail string) string {
	if detail == "" {
		return ""
	}

	return " (" + detail + ")"
}
