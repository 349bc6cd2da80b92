package state

import "testing"

func TestMoveCursorHome(t *testing.T) {
	g := NewGrid(3, 4, false)
	g.Cursor = 2
	if !g.MoveCursorHome() {
		t.Fatalf("expected move when rows exist")
	}
	if g.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", g.Cursor)
	}

	empty := NewGrid(0, 4, false)
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty grid")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorEnd(t *testing.T) {
	g := NewGrid(3, 4, false)
	if !g.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if g.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", g.Cursor)
	}
	if g.RemainingRows() != 0 {
		t.Fatalf("expected no rows below the last row")
	}
}

func TestMoveCursorWraps(t *testing.T) {
	g := NewGrid(3, 4, true)
	if !g.MoveCursorUp() || g.Cursor != 2 {
		t.Fatalf("expected wrap to last row, got %d", g.Cursor)
	}
	if !g.MoveCursorDown() || g.Cursor != 0 {
		t.Fatalf("expected wrap to first row, got %d", g.Cursor)
	}

	flat := NewGrid(3, 4, false)
	if flat.MoveCursorUp() {
		t.Fatalf("expected no wrap without loop selection")
	}
	flat.MoveCursorEnd()
	if flat.MoveCursorDown() {
		t.Fatalf("expected no wrap past the end")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	g := NewGrid(5, 4, false)
	if !g.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if g.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", g.Cursor)
	}
	if !g.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on second page down")
	}
	if g.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", g.Cursor)
	}
	if g.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !g.MoveCursorPageUp(2) {
		t.Fatalf("expected movement on page up")
	}
	if g.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page up, got %d", g.Cursor)
	}
	if !g.MoveCursorPageUp(10) {
		t.Fatalf("expected movement back to start")
	}
	if g.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", g.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	g := NewGrid(5, 4, false)
	g.Cursor = 4
	g.EnsureCursorVisible(2)
	if g.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", g.ViewportOffset)
	}

	g.Cursor = -1
	g.EnsureCursorVisible(2)
	if g.Cursor != 0 {
		t.Fatalf("expected cursor normalized to 0, got %d", g.Cursor)
	}

	g.ViewportOffset = 4
	g.EnsureCursorVisible(0)
	if g.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", g.ViewportOffset)
	}

	g.ViewportOffset = 4
	g.Cursor = 1
	g.EnsureCursorVisible(3)
	if g.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", g.ViewportOffset)
	}
}

func TestResizeClampsSelection(t *testing.T) {
	g := NewGrid(10, 4, false)
	g.Cursor = 9
	g.Column = 3
	g.Resize(4, 2)
	if g.Cursor != 3 || g.Column != 1 {
		t.Fatalf("expected clamped selection, got row %d col %d", g.Cursor, g.Column)
	}
	g.Reset(0, 4)
	if g.Cursor != 0 || g.Column != 0 || g.ViewportOffset != 0 {
		t.Fatalf("expected origin after reset, got %#v", g)
	}
}

func TestColumnMovement(t *testing.T) {
	g := NewGrid(1, 3, false)
	if g.MoveColumnLeft() {
		t.Fatalf("expected no move left of first column")
	}
	g.MoveColumnRight()
	g.MoveColumnRight()
	if g.MoveColumnRight() || g.Column != 2 {
		t.Fatalf("expected stop at last column, got %d", g.Column)
	}
	g.Loop = true
	if !g.MoveColumnRight() || g.Column != 0 {
		t.Fatalf("expected wrap to first column, got %d", g.Column)
	}
}

func TestEnsureColumnVisible(t *testing.T) {
	g := NewGrid(1, 4, false)
	fitsTwo := func(first, last int) bool { return last-first < 2 }

	g.Column = 3
	g.EnsureColumnVisible(0, fitsTwo)
	if g.ColumnOffset != 2 {
		t.Fatalf("expected offset 2, got %d", g.ColumnOffset)
	}
	g.Column = 1
	g.EnsureColumnVisible(0, fitsTwo)
	if g.ColumnOffset != 1 {
		t.Fatalf("expected offset to follow selection left, got %d", g.ColumnOffset)
	}

	g.ColumnOffset = 0
	g.Column = 0
	g.EnsureColumnVisible(1, fitsTwo)
	if g.ColumnOffset != 1 {
		t.Fatalf("expected offset past pinned columns, got %d", g.ColumnOffset)
	}
}
