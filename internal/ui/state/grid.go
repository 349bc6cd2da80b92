// Package state holds the cursor, viewport, find and mark state of the
// stock grid. Nothing here touches row data; callers pass counts and labels.
package state

// Grid tracks the selected cell and the visible window over a table of Rows
// by Columns.
type Grid struct {
	Rows           int
	Columns        int
	Cursor         int
	Column         int
	ViewportOffset int
	ColumnOffset   int
	Loop           bool
}

// NewGrid returns a grid with the first cell selected.
func NewGrid(rows, columns int, loop bool) *Grid {
	g := &Grid{Loop: loop}
	g.Resize(rows, columns)
	return g
}

// Resize updates the dimensions and clamps the selection into range.
func (g *Grid) Resize(rows, columns int) {
	if rows < 0 {
		rows = 0
	}
	if columns < 0 {
		columns = 0
	}
	g.Rows = rows
	g.Columns = columns
	g.Cursor = clamp(g.Cursor, 0, rows-1)
	g.Column = clamp(g.Column, 0, columns-1)
	if g.ColumnOffset > g.Column {
		g.ColumnOffset = g.Column
	}
}

// Reset returns the selection and both offsets to the origin.
func (g *Grid) Reset(rows, columns int) {
	g.Cursor = 0
	g.Column = 0
	g.ViewportOffset = 0
	g.ColumnOffset = 0
	g.Resize(rows, columns)
}

// RemainingRows is the number of rows below the cursor.
func (g *Grid) RemainingRows() int {
	if g.Rows == 0 {
		return 0
	}
	return g.Rows - 1 - g.Cursor
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
