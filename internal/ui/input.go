package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/atomicstack/stock-table/internal/logging/events"
	uistate "github.com/atomicstack/stock-table/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m *Model) focusRowInput() tea.Cmd {
	m.mode = ModeRowInput
	m.rowInput.CursorEnd()
	return m.rowInput.Focus()
}

// handleRowInputKey edits the row count field. Enter commits; leaving the
// field with esc or tab commits too.
func (m *Model) handleRowInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
		return m.commitRowInput()
	}
	var cmd tea.Cmd
	m.rowInput, cmd = m.rowInput.Update(msg)
	return cmd
}

func (m *Model) commitRowInput() tea.Cmd {
	m.rowInput.Blur()
	m.mode = ModeGrid
	text := m.rowInput.Value()
	rows, ok := parseRowCount(text)
	if !ok {
		events.Input.Reject(text)
		return nil
	}
	if limit := m.delegate.Paging().MaxRows; rows > limit {
		events.Input.Reject(text)
		m.setInfo(fmt.Sprintf("Row count must be at most %s.", humanize.Comma(int64(limit))))
		return nil
	}
	events.Input.Commit(text, rows)
	m.resetRows(rows)
	return m.maybeLoadMore()
}

// parseRowCount accepts a plain non-negative decimal integer.
func parseRowCount(text string) (int, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, strconv.IntSize-1)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func (m *Model) resetRows(rows int) {
	m.delegate.Reset(rows)
	events.Table.Reset(rows)
	m.marks.Clear()
	m.errMsg = ""
	m.grid.Reset(m.delegate.RowCount(), m.delegate.ColumnCount())
	m.syncGrid()
}

func (m *Model) startFind() {
	m.mode = ModeFind
	m.findAt = m.grid.Cursor
	m.find.Set("", 0)
	m.forceClearInfo()
}

func (m *Model) endFind(keep bool) tea.Cmd {
	m.mode = ModeGrid
	if !keep {
		m.grid.MoveCursorTo(m.findAt)
		m.findAt = -1
		m.syncViewport()
		return nil
	}
	m.findAt = -1
	events.UI.Find(m.find.Text, m.grid.Cursor)
	return m.afterCursorMove(true)
}

func (m *Model) handleFindKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "enter":
		return m.endFind(true)
	case "esc":
		return m.endFind(false)
	case "ctrl+u":
		if m.find.Text != "" {
			m.find.Set("", 0)
			m.applyFind()
		}
		return nil
	case "ctrl+w":
		if m.find.DeleteWordBackward() {
			m.applyFind()
		}
		return nil
	case "ctrl+a":
		m.find.MoveStart()
		return nil
	case "ctrl+e":
		m.find.MoveEnd()
		return nil
	case "alt+b":
		m.find.MoveWordBackward()
		return nil
	case "alt+f":
		m.find.MoveWordForward()
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if m.find.DeleteRuneBackward() {
			m.applyFind()
		}
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		if m.find.Insert(string(msg.Runes)) {
			m.applyFind()
		}
	case tea.KeySpace:
		if m.find.Insert(" ") {
			m.applyFind()
		}
	case tea.KeyLeft:
		m.find.MoveRuneBackward()
	case tea.KeyRight:
		m.find.MoveRuneForward()
	}
	return nil
}

// applyFind jumps to the best matching row for the current query.
func (m *Model) applyFind() {
	query := strings.TrimSpace(m.find.Text)
	if query == "" {
		m.forceClearInfo()
		m.grid.MoveCursorTo(m.findAt)
		m.syncViewport()
		return
	}
	idx := uistate.BestMatchIndex(m.findCandidates(), query)
	if idx < 0 {
		m.setInfo(fmt.Sprintf("No match for %q", query))
		return
	}
	m.forceClearInfo()
	m.grid.MoveCursorTo(idx)
	m.syncViewport()
}

func (m *Model) findCandidates() []uistate.Candidate {
	n := m.delegate.RowCount()
	cands := make([]uistate.Candidate, 0, n)
	for i := 0; i < n; i++ {
		row, err := m.delegate.Row(i)
		if err != nil {
			break
		}
		cands = append(cands, uistate.Candidate{Key: row.Symbol, Label: row.Name})
	}
	return cands
}

func (m *Model) findPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "/ "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	runes := []rune(m.find.Text)
	pos := m.find.Pos()
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	caretStyle := lipgloss.NewStyle().Reverse(true)
	if styles.Filter != nil {
		caretStyle = styles.Filter.Copy().Reverse(true)
	}
	return prompt + render(styles.Filter, string(runes[:pos])) + caretStyle.Render(caret) + render(styles.Filter, after)
}
