package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += max(runewidth.RuneWidth(ru), 1)
	}
	return builder.String()
}

// DisplayWidth reports the printable width of text. Escape sequences take no
// columns and each grapheme cluster counts once.
func DisplayWidth(text string) int {
	return ansi.StringWidth(text)
}

// TruncateToWidth shortens text to at most width columns, ending with tail
// when anything was cut.
func TruncateToWidth(text string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if runewidth.StringWidth(tail) >= width {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, tail)
}
