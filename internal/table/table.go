// Package table turns parsed CSV records into a bordered, colored table and
// the info and footer blocks printed around it.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/kk-code-lab/pcsv/internal/config"
	"github.com/kk-code-lab/pcsv/internal/fs"
	"github.com/kk-code-lab/pcsv/internal/infer"
	"github.com/kk-code-lab/pcsv/internal/textutil"
)

const (
	// percentThreshold is the smallest requested width read as a percentage.
	percentThreshold = 100
	truncationTail   = "..."
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cellPadding = lipgloss.NewStyle().Padding(0, 1)
)

// Options controls what the table shows.
type Options struct {
	// MaxRows limits the data rows; 0 shows every row.
	MaxRows    int
	RowNumbers bool
	// Width is the requested table width. 0 fills the terminal and values
	// of 100 and above are a percentage of the terminal width.
	Width int
}

// EffectiveWidth resolves a requested width against the terminal width.
func EffectiveWidth(requested, termWidth int) int {
	switch {
	case requested <= 0:
		return termWidth
	case requested >= percentThreshold:
		return max(requested*termWidth/100, 1)
	default:
		return requested
	}
}

// ShownRows is how many of total rows a MaxRows limit lets through.
func ShownRows(maxRows, total int) int {
	if maxRows <= 0 {
		return total
	}
	return min(maxRows, total)
}

// Formatter renders records with one color scheme.
type Formatter struct {
	opts     Options
	width    int
	patterns *infer.Patterns

	header    lipgloss.Style
	rowNumber lipgloss.Style
	border    lipgloss.Style
	types     map[infer.DataType]lipgloss.Style
}

// NewFormatter builds a formatter for a terminal termWidth columns wide.
func NewFormatter(scheme config.ColorScheme, patterns *infer.Patterns, opts Options, termWidth int) *Formatter {
	fg := func(c config.HexColor) lipgloss.Style {
		return cellPadding.Foreground(lipgloss.Color(string(c)))
	}
	dt := scheme.DataTypes

	return &Formatter{
		opts:      opts,
		width:     EffectiveWidth(opts.Width, termWidth),
		patterns:  patterns,
		header:    fg(scheme.Header).Bold(true),
		rowNumber: fg(scheme.RowNumber),
		border:    lipgloss.NewStyle().Foreground(lipgloss.Color(string(scheme.Border))),
		types: map[infer.DataType]lipgloss.Style{
			infer.Text:    fg(dt.Text),
			infer.Int:     fg(dt.IntNumber),
			infer.Float:   fg(dt.FloatNumber),
			infer.Boolean: fg(dt.Boolean),
			infer.Date:    fg(dt.Date),
			infer.Empty:   fg(dt.Empty),
		},
	}
}

// Width is the resolved table width.
func (f *Formatter) Width() int {
	return f.width
}

// Render draws the first ShownRows rows of records as a table. Cell types
// are detected on the full value before any truncation.
func (f *Formatter) Render(records *fs.Records) string {
	cols := records.Columns()
	shown := ShownRows(f.opts.MaxRows, len(records.Rows))

	offset := 0
	if f.opts.RowNumbers {
		offset = 1
	}

	rows := make([][]string, shown)
	types := make([][]infer.DataType, shown)
	for i := range shown {
		row := make([]string, cols+offset)
		kinds := make([]infer.DataType, cols)
		if offset > 0 {
			row[0] = strconv.Itoa(i + 1)
		}
		src := records.Rows[i]
		for c := range cols {
			val := ""
			if c < len(src) {
				val = textutil.CleanCell(src[c])
			}
			kinds[c] = infer.Detect(val, f.patterns)
			row[c+offset] = f.truncate(val)
		}
		rows[i] = row
		types[i] = kinds
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(f.border).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return f.header
			case offset > 0 && col == 0:
				return f.rowNumber
			case row < 0 || row >= len(types) || col-offset >= len(types[row]):
				return cellPadding
			default:
				return f.types[types[row][col-offset]]
			}
		})

	if records.Headers != nil {
		headers := make([]string, 0, cols+offset)
		if offset > 0 {
			headers = append(headers, "#")
		}
		for c := range cols {
			name := ""
			if c < len(records.Headers) {
				name = textutil.CleanCell(records.Headers[c])
			}
			headers = append(headers, f.truncate(name))
		}
		t.Headers(headers...)
	}

	out := t.Render()
	if f.width > 0 && maxLineWidth(out) > f.width {
		out = t.Width(f.width).Render()
	}
	return out
}

// Info is the block printed above the table.
func (f *Formatter) Info(path string, records *fs.Records) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CSV File Information"))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("File:"), valueStyle.Render(textutil.SanitizeTerminalText(path)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Rows:"), countStyle.Render(strconv.Itoa(len(records.Rows))))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Columns:"), countStyle.Render(strconv.Itoa(records.Columns())))
	return b.String()
}

// Summary is a one-line description of the file, used as the pager header.
func Summary(path string, records *fs.Records) string {
	return fmt.Sprintf("%s  %d rows, %d columns", textutil.SanitizeTerminalText(path), len(records.Rows), records.Columns())
}

// Footer tells the user rows were left out. It is empty when every row is shown.
func Footer(shown, total int) string {
	if shown >= total {
		return ""
	}
	return fmt.Sprintf("%s %s %s %s %s %s\n%s",
		noticeStyle.Render("Showing"),
		valueStyle.Render(strconv.Itoa(shown)),
		noticeStyle.Render("of"),
		valueStyle.Render(strconv.Itoa(total)),
		noticeStyle.Render("rows. Use"),
		countStyle.Render("-n 0"),
		noticeStyle.Render("to show all rows."),
	)
}

// truncate applies only when the user asked for a width. It cuts a cell to the requested -w value itself, even when that value
// is read as a percentage for the table as a whole.
func (f *Formatter) truncate(val string) string {
	if f.opts.Width <= 0 {
		return val
	}
	return textutil.TruncateToWidth(val, f.opts.Width, truncationTail)
}

func maxLineWidth(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		widest = max(widest, textutil.DisplayWidth(line))
	}
	return widest
}
