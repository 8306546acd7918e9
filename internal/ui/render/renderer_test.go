package render

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pcsv/internal/config"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(scr.Fini)
	scr.SetSize(w, h)
	return scr
}

func rowText(scr tcell.SimulationScreen, y int) string {
	cells, w, _ := scr.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		cell := cells[y*w+x]
		if len(cell.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(cell.Runes))
	}
	return strings.TrimRight(b.String(), " ")
}

func cellStyle(scr tcell.SimulationScreen, x, y int) tcell.Style {
	cells, w, _ := scr.GetContents()
	return cells[y*w+x].Style
}

func lines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "line-" + string(rune('a'+i))
	}
	return out
}

func TestRenderPagerDrawsHeaderAndViewport(t *testing.T) {
	scr := newTestScreen(t, 20, 5)
	r := NewRenderer(scr, GetColorTheme())

	r.RenderPager(PagerView{
		Header:    "HEADER",
		HasHeader: true,
		Lines:     lines(10),
		Start:     2,
		End:       5,
	})

	want := []string{"HEADER", "line-c", "line-d", "line-e", ""}
	for y, expect := range want {
		if got := rowText(scr, y); got != expect {
			t.Fatalf("row %d: expected %q, got %q", y, expect, got)
		}
	}

	fg, _, attrs := cellStyle(scr, 0, 0).Decompose()
	if fg != tcell.ColorDarkCyan || attrs&tcell.AttrBold == 0 {
		t.Fatalf("header should use the bold header color, got fg=%v attrs=%v", fg, attrs)
	}
}

func TestRenderPagerStopsAtScreenHeight(t *testing.T) {
	scr := newTestScreen(t, 20, 3)
	r := NewRenderer(scr, GetColorTheme())

	r.RenderPager(PagerView{
		Header:    "H",
		HasHeader: true,
		Lines:     lines(10),
		Start:     0,
		End:       3,
	})

	if got := rowText(scr, 2); got != "line-b" {
		t.Fatalf("last row should be line-b, got %q", got)
	}
}

func TestRenderPagerWithoutHeader(t *testing.T) {
	scr := newTestScreen(t, 20, 4)
	r := NewRenderer(scr, GetColorTheme())

	r.RenderPager(PagerView{Lines: lines(3), Start: 1, End: 3})

	if got := rowText(scr, 0); got != "line-b" {
		t.Fatalf("first row should be line-b, got %q", got)
	}
	if got := rowText(scr, 2); got != "" {
		t.Fatalf("row past viewport should be blank, got %q", got)
	}
}

func TestRenderPagerClearsPreviousFrame(t *testing.T) {
	scr := newTestScreen(t, 20, 3)
	r := NewRenderer(scr, GetColorTheme())

	r.RenderPager(PagerView{Lines: []string{"a long first line"}, Start: 0, End: 1})
	r.RenderPager(PagerView{Lines: []string{"short"}, Start: 0, End: 1})

	if got := rowText(scr, 0); got != "short" {
		t.Fatalf("expected stale text to be cleared, got %q", got)
	}
}

func TestRenderPagerClipsAtRightEdge(t *testing.T) {
	scr := newTestScreen(t, 5, 2)
	r := NewRenderer(scr, GetColorTheme())

	r.RenderPager(PagerView{Lines: []string{"abcdefgh", "xy"}, Start: 0, End: 2})

	if got := rowText(scr, 0); got != "abcde" {
		t.Fatalf("expected clipped row, got %q", got)
	}
	if got := rowText(scr, 1); got != "xy" {
		t.Fatalf("clipped line must not wrap into next row, got %q", got)
	}
}

func TestRenderPagerAppliesEmbeddedColor(t *testing.T) {
	scr := newTestScreen(t, 20, 2)
	r := NewRenderer(scr, GetColorTheme())

	r.RenderPager(PagerView{
		Lines: []string{"\x1b[38;2;166;227;161m42\x1b[0m x"},
		Start: 0,
		End:   1,
	})

	if got := rowText(scr, 0); got != "42 x" {
		t.Fatalf("escape sequences must not be drawn, got %q", got)
	}
	fg, _, _ := cellStyle(scr, 0, 0).Decompose()
	if fg != tcell.NewRGBColor(166, 227, 161) {
		t.Fatalf("expected truecolor foreground, got %v", fg)
	}
	fg, _, _ = cellStyle(scr, 3, 0).Decompose()
	if fg != tcell.ColorDefault {
		t.Fatalf("expected reset after SGR 0, got %v", fg)
	}
}

func TestRenderPagerKeepsTableBordersAligned(t *testing.T) {
	out := table.New().
		Border(lipgloss.NormalBorder()).
		Rows([]string{"👍🏽", "x"}).
		Render()
	rows := strings.Split(out, "\n")

	scr := newTestScreen(t, 40, len(rows))
	r := NewRenderer(scr, GetColorTheme())
	r.RenderPager(PagerView{Lines: rows, Start: 0, End: len(rows)})

	for y, row := range rows {
		if got, want := r.drawStyledLine(0, y, 40, row, r.theme.BaseStyle()), lipgloss.Width(row); got != want {
			t.Fatalf("row %d %q: drew %d columns, table laid out %d", y, row, got, want)
		}
	}
	scr.Show()

	cells, w, _ := scr.GetContents()
	found := false
	for y, row := range rows {
		if !strings.Contains(row, "x") {
			continue
		}
		found = true
		last := lipgloss.Width(row) - 1
		if got := cells[y*w+last].Runes; len(got) == 0 || got[0] != '│' {
			t.Fatalf("row %d: right border should be at column %d, got %q", y, last, string(got))
		}
		if got := cells[y*w+last-1].Runes; len(got) == 0 || got[0] != 'x' {
			t.Fatalf("row %d: expected x before the border, got %q", y, string(got))
		}
	}
	if !found {
		t.Fatalf("no data row in %q", out)
	}
}

func TestThemeFromScheme(t *testing.T) {
	scheme := config.Default()
	theme := ThemeFromScheme(scheme)
	if theme.HeaderFg != tcell.NewRGBColor(0xCB, 0xB6, 0xF7) {
		t.Fatalf("expected header color from scheme, got %v", theme.HeaderFg)
	}

	scheme.Header = "#F0A"
	if got, want := ThemeFromScheme(scheme).HeaderFg, tcell.NewRGBColor(0xFF, 0x00, 0xAA); got != want {
		t.Fatalf("short hex header: expected %v, got %v", want, got)
	}

	scheme.Header = "bogus"
	if ThemeFromScheme(scheme).HeaderFg != GetColorTheme().HeaderFg {
		t.Fatalf("invalid header color should keep the default")
	}
}
