package pretty

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces to width cells. Call it before styling, since
// ANSI escapes would count toward the width.
func PadRight(s string, width int) string {
	if w := Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// PadLeft pads s on the left to width cells.
func PadLeft(s string, width int) string {
	if w := Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// TruncateLeft shortens s to width cells by dropping its head, marking the
// cut with an ellipsis. File paths keep their most specific part this way.
func TruncateLeft(s string, width int) string {
	if Width(s) <= width {
		return s
	}
	if width <= 1 {
		return runewidth.Truncate(s, width, "")
	}

	runes := []rune(s)
	tail := 0
	used := 1 // ellipsis
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if used+rw > width {
			break
		}
		used += rw
		tail++
	}

	return "…" + string(runes[len(runes)-tail:])
}

// TruncateRight shortens s to width cells, ending with an ellipsis.
func TruncateRight(s string, width int) string {
	if Width(s) <= width {
		return s
	}
	if width <= 1 {
		return runewidth.Truncate(s, width, "")
	}

	return runewidth.Truncate(s, width, "…")
}
