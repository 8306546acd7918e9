package table

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/kk-code-lab/pcsv/internal/config"
	"github.com/kk-code-lab/pcsv/internal/fs"
	"github.com/kk-code-lab/pcsv/internal/infer"
)

func sampleRecords() *fs.Records {
	return &fs.Records{
		Headers: []string{"name", "age", "joined"},
		Rows: [][]string{
			{"alice", "34", "2023-06-20"},
			{"bob", "", "01/02/2020"},
			{"carol", "29.5"},
			{"dave", "true", "n/a"},
		},
	}
}

func TestEffectiveWidth(t *testing.T) {
	tests := []struct {
		requested, term, want int
	}{
		{0, 120, 120},
		{-5, 80, 80},
		{60, 200, 60},
		{99, 80, 99},
		{100, 80, 80},
		{150, 80, 120},
		{100, 0, 1},
	}

	for _, tt := range tests {
		if got := EffectiveWidth(tt.requested, tt.term); got != tt.want {
			t.Fatalf("EffectiveWidth(%d, %d): expected %d, got %d", tt.requested, tt.term, tt.want, got)
		}
	}
}

func TestShownRows(t *testing.T) {
	tests := []struct {
		maxRows, total, want int
	}{
		{0, 10, 10},
		{50, 10, 10},
		{3, 10, 3},
		{-1, 4, 4},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := ShownRows(tt.maxRows, tt.total); got != tt.want {
			t.Fatalf("ShownRows(%d, %d): expected %d, got %d", tt.maxRows, tt.total, tt.want, got)
		}
	}
}

func TestRenderShowsHeadersAndCells(t *testing.T) {
	f := NewFormatter(config.Default(), infer.DefaultPatterns(), Options{}, 120)
	out := f.Render(sampleRecords())

	for _, want := range []string{"name", "age", "joined", "alice", "2023-06-20", "carol", "29.5", "n/a"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "┌") || !strings.Contains(out, "┘") {
		t.Fatalf("expected a full border:\n%s", out)
	}
}

func TestRenderLimitsRows(t *testing.T) {
	f := NewFormatter(config.Default(), infer.DefaultPatterns(), Options{MaxRows: 2}, 120)
	out := f.Render(sampleRecords())

	if !strings.Contains(out, "bob") {
		t.Fatalf("second row should be shown:\n%s", out)
	}
	if strings.Contains(out, "carol") || strings.Contains(out, "dave") {
		t.Fatalf("rows past the limit should be hidden:\n%s", out)
	}
}

func TestRenderRowNumbers(t *testing.T) {
	f := NewFormatter(config.Default(), infer.DefaultPatterns(), Options{RowNumbers: true}, 120)
	out := f.Render(sampleRecords())

	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[1], "#") {
		t.Fatalf("expected # header column, got %q", lines[1])
	}
	idx := -1
	for i, line := range lines {
		if strings.Contains(line, "alice") {
			idx = i
			break
		}
	}
	if idx < 0 || !strings.Contains(lines[idx], "1") {
		t.Fatalf("expected row number on the alice row:\n%s", out)
	}
}

func TestRenderWithoutHeader(t *testing.T) {
	records := &fs.Records{Rows: [][]string{{"x", "1"}, {"y", "2"}}}
	f := NewFormatter(config.Default(), infer.DefaultPatterns(), Options{}, 120)
	out := f.Render(records)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if !strings.Contains(lines[1], "x") {
		t.Fatalf("first data row should follow the top border, got %q", lines[1])
	}
}

func TestRenderFitsRequestedWidth(t *testing.T) {
	records := &fs.Records{
		Headers: []string{"id", "description"},
		Rows: [][]string{
			{"1", strings.Repeat("long text ", 12)},
			{"2", "short"},
		},
	}
	f := NewFormatter(config.Default(), infer.DefaultPatterns(), Options{Width: 40}, 200)
	out := f.Render(records)

	if f.Width() != 40 {
		t.Fatalf("expected width 40, got %d", f.Width())
	}
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Fatalf("line wider than 40 columns (%d): %q", w, line)
		}
	}
}

func TestTruncateUsesRequestedWidth(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		term      int
		cell      string
		want      string
	}{
		{"no width keeps cell", 0, 40, strings.Repeat("a", 60), strings.Repeat("a", 60)},
		{"absolute width", 10, 80, "abcdefghijklmnop", "abcdefg..."},
		{"percentage table width keeps short cells", 150, 40, strings.Repeat("b", 100), strings.Repeat("b", 100)},
		{"percentage cuts at the raw value", 120, 40, strings.Repeat("c", 130), strings.Repeat("c", 117) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(config.Default(), infer.DefaultPatterns(), Options{Width: tt.requested}, tt.term)
			if got := f.truncate(tt.cell); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderSanitizesCells(t *testing.T) {
	records := &fs.Records{Rows: [][]string{{"evil\x1b[2Jcell"}}}
	f := NewFormatter(config.Default(), infer.DefaultPatterns(), Options{}, 120)
	out := f.Render(records)

	if strings.Contains(out, "\x1b[2J") {
		t.Fatalf("cell escape sequence leaked into output: %q", out)
	}
}

func TestInfo(t *testing.T) {
	f := NewFormatter(config.Default(), infer.DefaultPatterns(), Options{}, 80)
	out := f.Info("data.csv", sampleRecords())

	for _, want := range []string{"CSV File Information", "File:", "data.csv", "Rows:", "4", "Columns:", "3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in info block:\n%s", want, out)
		}
	}
}

func TestSummary(t *testing.T) {
	if got := Summary("data.csv", sampleRecords()); got != "data.csv  4 rows, 3 columns" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestFooter(t *testing.T) {
	if got := Footer(4, 4); got != "" {
		t.Fatalf("expected no footer when everything is shown, got %q", got)
	}

	out := Footer(50, 120)
	for _, want := range []string{"Showing", "50", "of", "120", "-n 0", "to show all rows."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in footer %q", want, out)
		}
	}
}
