package ui

import (
	"github.com/atomicstack/stock-table/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Size is a cell padding preset picked from the size menu.
type Size int

const (
	SizeLarge Size = iota
	SizeMedium
	SizeSmall
	SizeXSmall
)

var sizes = []Size{SizeLarge, SizeMedium, SizeSmall, SizeXSmall}

func (s Size) String() string {
	switch s {
	case SizeLarge:
		return "Large"
	case SizeMedium:
		return "Medium"
	case SizeSmall:
		return "Small"
	case SizeXSmall:
		return "XSmall"
	}
	return "Unknown"
}

// Padding is the number of blank cells on each side of a cell's text.
func (s Size) Padding() int {
	switch s {
	case SizeLarge:
		return 3
	case SizeMedium:
		return 2
	case SizeSmall:
		return 1
	}
	return 0
}

// CurrentSize reports the chosen size preset.
func (m *Model) CurrentSize() Size {
	return m.size
}

func (m *Model) openSizeMenu() {
	m.mode = ModeSizeMenu
	m.menuCursor = 0
	for i, s := range sizes {
		if s == m.size {
			m.menuCursor = i
		}
	}
}

func (m *Model) handleSizeMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "q", "m":
		m.mode = ModeGrid
	case "up", "k":
		m.menuCursor = (m.menuCursor + len(sizes) - 1) % len(sizes)
	case "down", "j":
		m.menuCursor = (m.menuCursor + 1) % len(sizes)
	case "enter":
		m.chooseSize(sizes[m.menuCursor])
	}
	return nil
}

func (m *Model) chooseSize(s Size) {
	m.mode = ModeGrid
	m.size = s
	events.UI.Size(s.String())
	m.syncColumns()
}
