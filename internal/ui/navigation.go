package ui

import (
	"fmt"

	"github.com/atomicstack/stock-table/internal/logging/events"
	"github.com/atomicstack/stock-table/internal/table"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	minColumnWidth = 3
	maxColumnWidth = 60
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.mode {
	case ModeRowInput:
		return m.handleRowInputKey(keyMsg)
	case ModeFind:
		return m.handleFindKey(keyMsg)
	case ModeSizeMenu:
		return m.handleSizeMenuKey(keyMsg)
	}

	k := m.keys
	switch {
	case key.Matches(keyMsg, k.Quit):
		return m.quit()
	case key.Matches(keyMsg, k.Up):
		return m.afterCursorMove(m.grid.MoveCursorUp())
	case key.Matches(keyMsg, k.Down):
		return m.afterCursorMove(m.grid.MoveCursorDown())
	case key.Matches(keyMsg, k.PageUp):
		return m.afterCursorMove(m.grid.MoveCursorPageUp(m.maxVisibleRows()))
	case key.Matches(keyMsg, k.PageDown):
		return m.afterCursorMove(m.grid.MoveCursorPageDown(m.maxVisibleRows()))
	case key.Matches(keyMsg, k.Home):
		return m.afterCursorMove(m.grid.MoveCursorHome())
	case key.Matches(keyMsg, k.End):
		return m.afterCursorMove(m.grid.MoveCursorEnd())
	case key.Matches(keyMsg, k.Left):
		m.selectColumn(-1)
	case key.Matches(keyMsg, k.Right):
		m.selectColumn(1)
	case key.Matches(keyMsg, k.MoveLeft):
		m.moveSelectedColumn(-1)
	case key.Matches(keyMsg, k.MoveRight):
		m.moveSelectedColumn(1)
	case key.Matches(keyMsg, k.Sort):
		m.sortSelectedColumn()
	case key.Matches(keyMsg, k.Narrow):
		m.resizeSelectedColumn(-1)
	case key.Matches(keyMsg, k.Widen):
		m.resizeSelectedColumn(1)
	case key.Matches(keyMsg, k.Refresh):
		m.toggleRefresh()
	case key.Matches(keyMsg, k.Stripe):
		m.stripe = !m.stripe
		events.UI.Stripe(m.stripe)
	case key.Matches(keyMsg, k.Fixed):
		m.toggleFixedColumns()
	case key.Matches(keyMsg, k.LoadMore):
		return m.loadMoreNow()
	case key.Matches(keyMsg, k.Rows):
		return m.focusRowInput()
	case key.Matches(keyMsg, k.Size):
		m.openSizeMenu()
	case key.Matches(keyMsg, k.Find):
		m.startFind()
	case key.Matches(keyMsg, k.Mark):
		m.toggleMark()
	case key.Matches(keyMsg, k.Copy):
		return m.copySelection()
	case key.Matches(keyMsg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// afterCursorMove traces the new row and asks for the next page when the
// cursor came close to the end.
func (m *Model) afterCursorMove(moved bool) tea.Cmd {
	if moved {
		events.UI.SelectRow(m.grid.Cursor)
	}
	m.syncViewport()
	return m.maybeLoadMore()
}

func (m *Model) selectColumn(delta int) {
	if !m.delegate.Capabilities().ColumnSelection {
		return
	}
	var moved bool
	if delta < 0 {
		moved = m.grid.MoveColumnLeft()
	} else {
		moved = m.grid.MoveColumnRight()
	}
	if !moved {
		return
	}
	events.UI.SelectColumn(m.grid.Column, m.delegate.ColumnKey(m.grid.Column))
	m.syncColumns()
}

func (m *Model) moveSelectedColumn(delta int) {
	from := m.grid.Column
	to := from + delta
	if !m.delegate.CanMoveColumn(from) {
		m.setInfo("Column order is locked.")
		return
	}
	if !m.delegate.MoveColumn(from, to) {
		return
	}
	m.grid.Column = to
	events.Table.MoveColumn(from, to, m.columnKeys())
	m.syncColumns()
}

func (m *Model) sortSelectedColumn() {
	col := m.grid.Column
	name := m.delegate.ColumnName(col)
	if !m.delegate.IsSortable(col) {
		m.setInfo(fmt.Sprintf("%s is not sortable.", name))
		return
	}
	dir := table.SortAscending
	if state := m.delegate.SortState(); state.Key == m.delegate.ColumnKey(col) {
		dir = state.Direction.Next()
	}
	if !m.delegate.PerformSort(col, dir) {
		m.setInfo(fmt.Sprintf("%s has no ordering.", name))
		return
	}
	events.Table.Sort(m.delegate.ColumnKey(col), dir.String())
	if m.verbose {
		m.setInfo(fmt.Sprintf("Sorted by %s (%s).", name, dir))
	}
}

func (m *Model) resizeSelectedColumn(delta int) {
	col := m.grid.Column
	if !m.delegate.CanResizeColumn(col) {
		m.setInfo(fmt.Sprintf("%s cannot be resized.", m.delegate.ColumnName(col)))
		return
	}
	width := m.columnWidth(col) + delta
	if width < minColumnWidth || width > maxColumnWidth {
		return
	}
	m.widths[m.delegate.ColumnKey(col)] = width
	events.UI.ColumnWidths(m.widths)
	m.syncColumns()
}

func (m *Model) toggleRefresh() {
	enabled := !m.dispatcher.RefreshEnabled()
	m.dispatcher.SetRefresh(enabled)
	if enabled {
		m.setInfo("Live prices on.")
	} else {
		m.setInfo("Live prices off.")
	}
}

func (m *Model) toggleFixedColumns() {
	enabled := !m.delegate.Capabilities().FixedColumns
	m.delegate.SetFixedColumns(enabled)
	events.Table.FixedColumns(enabled)
	m.syncColumns()
}

func (m *Model) loadMoreNow() tea.Cmd {
	if m.delegate.EndOfData() {
		m.setInfo("All rows loaded.")
		return nil
	}
	m.errMsg = ""
	return m.requestNextPage()
}

func (m *Model) columnKeys() []string {
	cols := m.delegate.Columns()
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return keys
}

// columnWidth is the preferred width with any user override applied.
func (m *Model) columnWidth(col int) int {
	if w, ok := m.widths[m.delegate.ColumnKey(col)]; ok {
		return w
	}
	if w, ok := m.delegate.ColumnWidth(col); ok {
		return w
	}
	return minColumnWidth
}

// syncGrid follows row or column count changes made by the delegate.
func (m *Model) syncGrid() {
	m.grid.Resize(m.delegate.RowCount(), m.delegate.ColumnCount())
	m.syncViewport()
	m.syncColumns()
}

func (m *Model) syncViewport() {
	m.grid.EnsureCursorVisible(m.maxVisibleRows())
}

func (m *Model) syncColumns() {
	m.grid.EnsureColumnVisible(m.pinnedColumns(), m.columnsFit)
}
