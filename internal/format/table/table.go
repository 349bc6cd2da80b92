package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const (
	separator = "  "
	ellipsis  = "…"
)

// Column fixes the width and alignment of one rendered column.
type Column struct {
	Width int
	Align Alignment
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if c >= colCount {
				break
			}
			width := CellWidth(cell)
			if width > widths[c] {
				widths[c] = width
			}
		}
	}
	cols := make([]Column, colCount)
	for c := range cols {
		cols[c].Width = widths[c]
		if c < len(alignments) {
			cols[c].Align = alignments[c]
		}
	}
	return FormatFixed(rows, cols)
}

// FormatFixed lays rows out in the given column widths. Cells wider than
// their column are cut with an ellipsis.
func FormatFixed(rows [][]string, cols []Column) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = Row(row, cols)
	}
	return out
}

// Row renders a single line. Missing cells render blank.
func Row(cells []string, cols []Column) string {
	var b strings.Builder
	for c, col := range cols {
		if c > 0 {
			b.WriteString(separator)
		}
		cell := ""
		if c < len(cells) {
			cell = cells[c]
		}
		b.WriteString(Fit(cell, col.Width, col.Align))
	}
	return b.String()
}

// Fit truncates or pads text to exactly width cells.
func Fit(text string, width int, align Alignment) string {
	if width <= 0 {
		return ""
	}
	if CellWidth(text) > width {
		text = truncate.StringWithTail(text, uint(width), ellipsis)
	}
	pad := width - CellWidth(text)
	if pad <= 0 {
		return text
	}
	if align == AlignRight {
		return strings.Repeat(" ", pad) + text
	}
	return text + strings.Repeat(" ", pad)
}

// CellWidth measures printable width, ignoring escape sequences.
func CellWidth(text string) int {
	return ansi.StringWidth(text)
}
