package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/stock-table/internal/logging"
	"github.com/atomicstack/stock-table/internal/logging/events"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

type copyResultMsg struct {
	firstID int
	rows    int
	err     error
}

func (m *Model) toggleMark() {
	row, err := m.delegate.Row(m.grid.Cursor)
	if err != nil {
		return
	}
	m.marks.Toggle(row.ID)
}

// selectedRowIndexes returns the marked rows in display order, or the cursor
// row when nothing is marked.
func (m *Model) selectedRowIndexes() []int {
	if m.marks.Len() == 0 {
		if m.delegate.RowCount() == 0 {
			return nil
		}
		return []int{m.grid.Cursor}
	}
	idx := make([]int, 0, m.marks.Len())
	for i := 0; i < m.delegate.RowCount(); i++ {
		row, err := m.delegate.Row(i)
		if err != nil {
			break
		}
		if m.marks.IsMarked(row.ID) {
			idx = append(idx, i)
		}
	}
	return idx
}

// rowsTSV renders rows as tab separated lines in the current column order.
func (m *Model) rowsTSV(indexes []int) string {
	cols := m.delegate.ColumnCount()
	lines := make([]string, 0, len(indexes))
	cells := make([]string, cols)
	for _, i := range indexes {
		for c := 0; c < cols; c++ {
			cells[c] = m.delegate.CellText(i, c)
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) copySelection() tea.Cmd {
	indexes := m.selectedRowIndexes()
	if len(indexes) == 0 {
		m.setInfo("Nothing to copy.")
		return nil
	}
	first, err := m.delegate.Row(indexes[0])
	if err != nil {
		return nil
	}
	text := m.rowsTSV(indexes)
	count := len(indexes)
	return func() tea.Msg {
		err := writeClipboard(text)
		return copyResultMsg{firstID: first.ID, rows: count, err: err}
	}
}

func (m *Model) handleCopyResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(copyResultMsg)
	if !ok {
		return nil
	}
	events.UI.Copy(result.firstID, result.err)
	if result.err != nil {
		logging.Errorf("copy rows: %w", result.err)
		m.errMsg = fmt.Sprintf("Copy failed: %v", result.err)
		m.forceClearInfo()
		events.Action.Error(result.err)
		return nil
	}
	info := fmt.Sprintf("Copied %d row(s).", result.rows)
	m.setInfo(info)
	events.Action.Success(info)
	m.marks.Clear()
	return nil
}
