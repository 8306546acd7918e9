package render

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
)

type styledCell struct {
	main  rune
	comb  []rune
	style tcell.Style
	width int
}

// decodeStyled splits text into grapheme cells, applying SGR sequences to the
// running style. Cell widths are the ones lipgloss lays tables out with.
// Escape sequences other than SGR are dropped, as are control characters.
func decodeStyled(p *ansi.Parser, text string, base tcell.Style) []styledCell {
	cells := make([]styledCell, 0, len(text))
	style := base

	var state byte
	for len(text) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(text, state, p)
		if n <= 0 {
			break
		}
		text = text[n:]
		state = newState

		switch {
		case width > 0:
			main, size := utf8.DecodeRuneInString(seq)
			var comb []rune
			if size < len(seq) {
				comb = []rune(seq[size:])
			}
			cells = append(cells, styledCell{main: main, comb: comb, style: style, width: width})
		case seq == "\t":
			cells = append(cells, styledCell{main: ' ', style: style, width: 1})
		case newState == ansi.NormalState && ansi.HasCsiPrefix(seq):
			cmd := ansi.Cmd(p.Command())
			if cmd.Final() == 'm' && cmd.Prefix() == 0 && cmd.Intermediate() == 0 {
				style = applySGR(style, base, p.Params())
			}
		}
	}
	return cells
}

func applySGR(style, base tcell.Style, params ansi.Params) tcell.Style {
	if len(params) == 0 {
		return base
	}

	for i := 0; i < len(params); i++ {
		n := params[i].Param(0)

		// Colon sub-parameters travel with their parent code.
		var sub []int
		if params[i].HasMore() {
			for i+1 < len(params) {
				i++
				sub = append(sub, params[i].Param(-1))
				if !params[i].HasMore() {
					break
				}
			}
		}

		switch {
		case n == 0:
			style = base
		case n == 1:
			style = style.Bold(true)
		case n == 2:
			style = style.Dim(true)
		case n == 3:
			style = style.Italic(true)
		case n == 4:
			style = style.Underline(len(sub) == 0 || sub[0] != 0)
		case n == 5:
			style = style.Blink(true)
		case n == 7:
			style = style.Reverse(true)
		case n == 9:
			style = style.StrikeThrough(true)
		case n == 22:
			style = style.Bold(false).Dim(false)
		case n == 23:
			style = style.Italic(false)
		case n == 24:
			style = style.Underline(false)
		case n == 25:
			style = style.Blink(false)
		case n == 27:
			style = style.Reverse(false)
		case n == 29:
			style = style.StrikeThrough(false)
		case n >= 30 && n <= 37:
			style = style.Foreground(tcell.PaletteColor(n - 30))
		case n == 38, n == 48:
			c, used, ok := extendedColor(sub, params[i+1:])
			i += used
			if !ok {
				continue
			}
			if n == 38 {
				style = style.Foreground(c)
			} else {
				style = style.Background(c)
			}
		case n == 39:
			fg, _, _ := base.Decompose()
			style = style.Foreground(fg)
		case n >= 40 && n <= 47:
			style = style.Background(tcell.PaletteColor(n - 40))
		case n == 49:
			_, bg, _ := base.Decompose()
			style = style.Background(bg)
		case n >= 90 && n <= 97:
			style = style.Foreground(tcell.PaletteColor(n - 90 + 8))
		case n >= 100 && n <= 107:
			style = style.Background(tcell.PaletteColor(n - 100 + 8))
		}
	}
	return style
}

// extendedColor reads the color of a 38/48 code, either from its colon
// sub-parameters ("38:5:n", "38:2::r:g:b", "38:2:r:g:b") or from the
// semicolon-separated parameters that follow it ("38;5;n", "38;2;r;g;b").
// It reports how many of rest it used.
func extendedColor(sub []int, rest ansi.Params) (tcell.Color, int, bool) {
	if len(sub) > 0 {
		switch {
		case sub[0] == 5 && len(sub) >= 2:
			return paletteColor(sub[1]), 0, sub[1] >= 0 && sub[1] <= 255
		case sub[0] == 2 && len(sub) >= 5:
			// The field after the 2 is the color-space id.
			c, ok := rgbColor(sub[2], sub[3], sub[4])
			return c, 0, ok
		case sub[0] == 2 && len(sub) == 4:
			c, ok := rgbColor(sub[1], sub[2], sub[3])
			return c, 0, ok
		}
		return tcell.ColorDefault, 0, false
	}

	if len(rest) == 0 {
		return tcell.ColorDefault, 0, false
	}
	switch rest[0].Param(-1) {
	case 5:
		if len(rest) < 2 {
			return tcell.ColorDefault, len(rest), false
		}
		v := rest[1].Param(-1)
		return paletteColor(v), 2, v >= 0 && v <= 255
	case 2:
		if len(rest) < 4 {
			return tcell.ColorDefault, len(rest), false
		}
		c, ok := rgbColor(rest[1].Param(-1), rest[2].Param(-1), rest[3].Param(-1))
		return c, 4, ok
	default:
		return tcell.ColorDefault, 1, false
	}
}

func paletteColor(n int) tcell.Color {
	if n < 0 || n > 255 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(n)
}

func rgbColor(r, g, b int) (tcell.Color, bool) {
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return tcell.ColorDefault, false
		}
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), true
}
