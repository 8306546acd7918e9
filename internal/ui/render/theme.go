package render

import (
	"charm.land/lipgloss/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pcsv/internal/config"
)

// ColorTheme defines pager colors.
type ColorTheme struct {
	Background tcell.Color
	Foreground tcell.Color
	HeaderFg   tcell.Color
}

// GetColorTheme returns the default pager colors.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background: tcell.ColorDefault,
		Foreground: tcell.ColorDefault,
		HeaderFg:   tcell.ColorDarkCyan,
	}
}

// ThemeFromScheme takes the header color from a config scheme. Colors go
// through the lipgloss parser so the pager header matches the printed table.
func ThemeFromScheme(scheme config.ColorScheme) ColorTheme {
	theme := GetColorTheme()
	if scheme.Header.Valid() {
		theme.HeaderFg = tcell.FromImageColor(lipgloss.Color(string(scheme.Header)))
	}
	return theme
}

// BaseStyle is the style content lines start from.
func (t ColorTheme) BaseStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Foreground).Background(t.Background)
}

// HeaderStyle is the style of the pinned header line.
func (t ColorTheme) HeaderStyle() tcell.Style {
	return t.BaseStyle().Foreground(t.HeaderFg).Bold(true)
}
