package whitespace

import (
	"fmt"
	"strings"
)

// Newline identifies the terminator that ends a line.
type Newline int

const (
	// NewlineNone marks the final line of a file that has no terminator.
	NewlineNone Newline = iota

	// NewlineLF is a single line feed (Unix, Linux, modern macOS).
	NewlineLF

	// NewlineCR is a single carriage return (classic Mac OS).
	NewlineCR

	// NewlineCRLF is a carriage return followed by a line feed (Windows).
	NewlineCRLF
)

var (
	bytesLF   = []byte{'\n'}
	bytesCR   = []byte{'\r'}
	bytesCRLF = []byte{'\r', '\n'}
)

// Bytes returns the raw terminator bytes. NewlineNone returns nil.
// The returned slice must not be modified.
func (n Newline) Bytes() []byte {
	switch n {
	case NewlineLF:
		return bytesLF
	case NewlineCR:
		return bytesCR
	case NewlineCRLF:
		return bytesCRLF
	default:
		return nil
	}
}

// String returns the escaped form of the terminator, e.g. `\r\n`.
func (n Newline) String() string {
	switch n {
	case NewlineLF:
		return `\n`
	case NewlineCR:
		return `\r`
	case NewlineCRLF:
		return `\r\n`
	default:
		return "none"
	}
}

// Name returns the conventional short name: LF, CR, CRLF or None.
func (n Newline) Name() string {
	switch n {
	case NewlineLF:
		return "LF"
	case NewlineCR:
		return "CR"
	case NewlineCRLF:
		return "CRLF"
	default:
		return "None"
	}
}

// NewlineCounts tallies the terminators found in a file.
type NewlineCounts struct {
	LF   int
	CR   int
	CRLF int
}

// Total returns the number of terminated lines.
func (c NewlineCounts) Total() int {
	return c.LF + c.CR + c.CRLF
}

// Majority returns the most frequent terminator. Ties favor LF, then CRLF,
// then CR. A file with no terminators resolves to LF.
func (c NewlineCounts) Majority() Newline {
	if c.CR > c.LF && c.CR > c.CRLF {
		return NewlineCR
	}

	if c.CRLF > c.LF {
		return NewlineCRLF
	}

	return NewlineLF
}

// add records one occurrence of terminator n.
func (c *NewlineCounts) add(n Newline) {
	switch n {
	case NewlineLF:
		c.LF++
	case NewlineCR:
		c.CR++
	case NewlineCRLF:
		c.CRLF++
	case NewlineNone:
	}
}

// NewlineMode is the requested terminator policy.
type NewlineMode int

const (
	// NewlineModeAuto uses the most common terminator in each file.
	NewlineModeAuto NewlineMode = iota

	// NewlineModeLinux always uses LF.
	NewlineModeLinux

	// NewlineModeMac always uses CR.
	NewlineModeMac

	// NewlineModeWindows always uses CRLF.
	NewlineModeWindows
)

// String returns the canonical configuration spelling of the mode.
func (m NewlineMode) String() string {
	switch m {
	case NewlineModeLinux:
		return "linux"
	case NewlineModeMac:
		return "macos"
	case NewlineModeWindows:
		return "windows"
	default:
		return "auto"
	}
}

// NewlineModeValues lists the accepted spellings for documentation and
// shell completion.
func NewlineModeValues() []string {
	return []string{"auto", "linux", "macos", "windows"}
}

// ParseNewlineMode parses a terminator policy. An empty string means auto.
func ParseNewlineMode(s string) (NewlineMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return NewlineModeAuto, nil
	case "linux", "lf", "unix":
		return NewlineModeLinux, nil
	case "mac", "macos", "mac-os", "cr":
		return NewlineModeMac, nil
	case "windows", "crlf":
		return NewlineModeWindows, nil
	default:
		return NewlineModeAuto, &ConfigError{
			Options: []string{OptionNewLineMarker},
			Message: fmt.Sprintf("unknown new line marker %q (valid: %s)", s, strings.Join(NewlineModeValues(), ", ")),
		}
	}
}

// ResolveNewline returns the terminator to use for a file with the given
// counts under the given policy.
func ResolveNewline(mode NewlineMode, counts NewlineCounts) Newline {
	switch mode {
	case NewlineModeLinux:
		return NewlineLF
	case NewlineModeMac:
		return NewlineCR
	case NewlineModeWindows:
		return NewlineCRLF
	case NewlineModeAuto:
		return counts.Majority()
	default:
		return counts.Majority()
	}
}
