package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Left      key.Binding
	Right     key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Sort      key.Binding
	Narrow    key.Binding
	Widen     key.Binding
	Refresh   key.Binding
	Stripe    key.Binding
	Fixed     key.Binding
	LoadMore  key.Binding
	Rows      key.Binding
	Size      key.Binding
	Find      key.Binding
	Mark      key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		MoveLeft:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move column left")),
		MoveRight: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move column right")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Narrow:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "narrow")),
		Widen:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "widen")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "live prices")),
		Stripe:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "stripes")),
		Fixed:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "pin columns")),
		LoadMore:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "load more")),
		Rows:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "row count")),
		Size:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "size")),
		Find:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Mark:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Sort, k.Rows, k.Find, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Left, k.Right, k.MoveLeft, k.MoveRight, k.Narrow, k.Widen},
		{k.Sort, k.Fixed, k.Stripe, k.Refresh, k.LoadMore, k.Size},
		{k.Rows, k.Find, k.Mark, k.Copy, k.Help, k.Quit},
	}
}
