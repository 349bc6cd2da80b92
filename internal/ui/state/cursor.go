package state

// MoveCursorUp moves one row up, wrapping to the last row when Loop is set.
func (g *Grid) MoveCursorUp() bool {
	if g.Rows == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	if g.Cursor > 0 {
		g.Cursor--
	} else if g.Loop {
		g.Cursor = g.Rows - 1
	}
	return old != g.Cursor
}

// MoveCursorDown moves one row down, wrapping to the first row when Loop is set.
func (g *Grid) MoveCursorDown() bool {
	if g.Rows == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	if g.Cursor < g.Rows-1 {
		g.Cursor++
	} else if g.Loop {
		g.Cursor = 0
	}
	return old != g.Cursor
}

// MoveCursorHome moves the cursor to the first row.
func (g *Grid) MoveCursorHome() bool {
	if g.Rows == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	g.Cursor = 0
	return old != g.Cursor
}

// MoveCursorEnd moves the cursor to the last row.
func (g *Grid) MoveCursorEnd() bool {
	if g.Rows == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	g.Cursor = g.Rows - 1
	return old != g.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (g *Grid) MoveCursorPageUp(maxVisible int) bool {
	return g.moveCursorBy(-g.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (g *Grid) MoveCursorPageDown(maxVisible int) bool {
	return g.moveCursorBy(g.pageSize(maxVisible))
}

// MoveCursorTo selects row, clamped into range.
func (g *Grid) MoveCursorTo(row int) bool {
	if g.Rows == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	g.Cursor = clamp(row, 0, g.Rows-1)
	return old != g.Cursor
}

func (g *Grid) moveCursorBy(delta int) bool {
	if g.Rows == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	g.Cursor = clamp(g.Cursor+delta, 0, g.Rows-1)
	return g.Cursor != old
}

func (g *Grid) pageSize(maxVisible int) int {
	if g.Rows == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > g.Rows {
		size = g.Rows
	}
	if size < 1 {
		size = 1
	}
	return size
}

// MoveColumnLeft selects the previous column.
func (g *Grid) MoveColumnLeft() bool {
	if g.Columns == 0 {
		return false
	}
	old := g.Column
	if g.Column > 0 {
		g.Column--
	} else if g.Loop {
		g.Column = g.Columns - 1
	}
	return old != g.Column
}

// MoveColumnRight selects the next column.
func (g *Grid) MoveColumnRight() bool {
	if g.Columns == 0 {
		return false
	}
	old := g.Column
	if g.Column < g.Columns-1 {
		g.Column++
	} else if g.Loop {
		g.Column = 0
	}
	return old != g.Column
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (g *Grid) EnsureCursorVisible(maxVisible int) {
	if g.Rows == 0 {
		g.Cursor = 0
		g.ViewportOffset = 0
		return
	}
	g.Cursor = clamp(g.Cursor, 0, g.Rows-1)
	if maxVisible <= 0 {
		g.ViewportOffset = 0
		return
	}
	maxOffset := g.Rows - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	g.ViewportOffset = clamp(g.ViewportOffset, 0, maxOffset)
	if g.Cursor < g.ViewportOffset {
		g.ViewportOffset = g.Cursor
	}
	upper := g.ViewportOffset + maxVisible - 1
	if g.Cursor > upper {
		g.ViewportOffset = clamp(g.Cursor-maxVisible+1, 0, maxOffset)
	}
}

// EnsureColumnVisible scrolls the scrollable columns so the selected column
// is drawn. pinned is the number of leading columns that never scroll and
// fits reports whether columns first..last fit the available width.
func (g *Grid) EnsureColumnVisible(pinned int, fits func(first, last int) bool) {
	if g.ColumnOffset < pinned {
		g.ColumnOffset = pinned
	}
	if g.ColumnOffset > g.Columns-1 {
		g.ColumnOffset = clamp(g.Columns-1, pinned, g.Columns-1)
	}
	if g.Column < pinned {
		return
	}
	if g.Column < g.ColumnOffset {
		g.ColumnOffset = g.Column
		return
	}
	for g.ColumnOffset < g.Column && !fits(g.ColumnOffset, g.Column) {
		g.ColumnOffset++
	}
}
