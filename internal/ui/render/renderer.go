package render

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
)

// PagerView is everything needed to draw one pager frame. Lines[Start:End]
// is the viewport; Header is drawn above it when HasHeader is set.
type PagerView struct {
	Header    string
	HasHeader bool
	Lines     []string
	Start     int
	End       int
}

// Renderer draws pager frames onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	parser *ansi.Parser
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen, theme ColorTheme) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  theme,
		parser: ansi.NewParser(),
	}
}

// RenderPager clears the screen and draws the header and the visible slice
// of lines, stopping at the bottom of the screen. Lines are clipped at the
// right edge.
func (r *Renderer) RenderPager(view PagerView) {
	r.screen.Clear()

	w, h := r.screen.Size()
	y := 0

	if view.HasHeader && y < h {
		r.drawStyledLine(0, y, w, view.Header, r.theme.HeaderStyle())
		y++
	}

	start := max(view.Start, 0)
	end := min(view.End, len(view.Lines))
	base := r.theme.BaseStyle()
	for i := start; i < end; i++ {
		if y >= h {
			break
		}
		r.drawStyledLine(0, y, w, view.Lines[i], base)
		y++
	}

	r.screen.Show()
}

// drawStyledLine draws text, which may carry SGR sequences, from startX and
// returns the column after the last drawn cell. Each grapheme takes the
// columns its decoded width reports.
func (r *Renderer) drawStyledLine(startX, y, maxX int, text string, base tcell.Style) int {
	x := startX
	for _, cell := range decodeStyled(r.parser, text, base) {
		if x+cell.width > maxX {
			break
		}
		r.screen.SetContent(x, y, cell.main, cell.comb, cell.style)
		x += cell.width
	}
	return x
}
