package ui

import (
	"fmt"
	"strings"
	"time"

	fmttable "github.com/atomicstack/stock-table/internal/format/table"
	"github.com/atomicstack/stock-table/internal/stock"
	"github.com/atomicstack/stock-table/internal/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultVisibleRows = 20
	gutterWidth        = 2
	markGlyph          = "●"
	cellSeparator      = " "
	fixedSeparator     = "│"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text already carries escapes; skip style wrapping
}

// View renders the header, the visible rows and the bottom bar.
func (m *Model) View() string {
	m.syncViewport()
	cols := m.visibleColumns()

	lines := make([]styledLine, 0, m.maxVisibleRows()+6)
	lines = append(lines, styledLine{text: m.renderHeader(cols), raw: true})
	if m.delegate.RowCount() == 0 {
		lines = append(lines, styledLine{text: "(no rows)", style: styles.Info})
	} else {
		start := m.grid.ViewportOffset
		end := start + m.maxVisibleRows()
		if end > m.delegate.RowCount() {
			end = m.delegate.RowCount()
		}
		for row := start; row < end; row++ {
			lines = append(lines, styledLine{text: m.renderRow(row, cols), raw: true})
		}
	}
	if m.mode == ModeSizeMenu {
		lines = append(lines, styledLine{text: m.renderSizeMenu(), raw: true})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.helpVisible() {
		m.help.Width = m.width
		lines = append(lines, styledLine{text: m.help.View(m.keys), raw: true})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	} else {
		statusLine = styledLine{text: m.statusText(), style: styles.Status}
	}
	prompt := m.rowInput.View()
	if m.mode == ModeFind {
		prompt = m.findPrompt()
	}
	bottom := applyWidth([]styledLine{statusLine, {text: prompt, raw: true}}, m.width)
	lines = append(lines, bottom...)
	return renderLines(lines)
}

func (m *Model) helpVisible() bool {
	return m.showFooter || m.help.ShowAll
}

// pinnedColumns counts the leading columns pinned to the left edge.
func (m *Model) pinnedColumns() int {
	n := 0
	for n < m.delegate.ColumnCount() && m.delegate.ColumnFixed(n) == table.FixedLeft {
		n++
	}
	return n
}

func (m *Model) cellWidth(col int) int {
	return m.columnWidth(col) + 2*m.size.Padding()
}

func (m *Model) spanWidth(cols []int) int {
	total := gutterWidth
	for i, c := range cols {
		if i > 0 {
			total += len(cellSeparator)
		}
		total += m.cellWidth(c)
	}
	return total
}

// columnsFit reports whether the pinned columns plus first..last fit the
// terminal width.
func (m *Model) columnsFit(first, last int) bool {
	if m.width <= 0 {
		return true
	}
	cols := make([]int, 0, last-first+1+m.pinnedColumns())
	for c := 0; c < m.pinnedColumns(); c++ {
		cols = append(cols, c)
	}
	for c := first; c <= last; c++ {
		cols = append(cols, c)
	}
	return m.spanWidth(cols) <= m.width
}

// visibleColumns lists the pinned columns, then scrollable columns from the
// horizontal offset for as long as they fit.
func (m *Model) visibleColumns() []int {
	pinned := m.pinnedColumns()
	cols := make([]int, 0, m.delegate.ColumnCount())
	for c := 0; c < pinned; c++ {
		cols = append(cols, c)
	}
	start := m.grid.ColumnOffset
	if start < pinned {
		start = pinned
	}
	for c := start; c < m.delegate.ColumnCount(); c++ {
		if len(cols) > 0 && m.width > 0 && m.spanWidth(append(cols, c)) > m.width {
			break
		}
		cols = append(cols, c)
	}
	return cols
}

func alignFor(key string) fmttable.Alignment {
	switch key {
	case "id", "price":
		return fmttable.AlignRight
	}
	return fmttable.AlignLeft
}

func (m *Model) separatorAfter(i int, cols []int) string {
	if i == len(cols)-1 {
		return ""
	}
	if m.delegate.ColumnFixed(cols[i]) == table.FixedLeft && m.delegate.ColumnFixed(cols[i+1]) != table.FixedLeft {
		return fixedSeparator
	}
	return cellSeparator
}

func (m *Model) renderHeader(cols []int) string {
	sort := m.delegate.SortState()
	pad := strings.Repeat(" ", m.size.Padding())
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for i, col := range cols {
		key := m.delegate.ColumnKey(col)
		name := m.delegate.ColumnName(col)
		style := styles.Header
		if sort.Key == key && sort.Direction != table.SortNone {
			name += " " + sortGlyph(sort.Direction)
			style = styles.HeaderSorted
		}
		if col == m.grid.Column && m.delegate.CanSelectColumn(col) {
			style = styles.HeaderSelected
		}
		text := pad + fmttable.Fit(name, m.columnWidth(col), alignFor(key)) + pad
		b.WriteString(render(style, text))
		b.WriteString(render(styles.FixedSeparator, m.separatorAfter(i, cols)))
	}
	return b.String()
}

func sortGlyph(dir table.SortDirection) string {
	if dir == table.SortDescending {
		return "▼"
	}
	return "▲"
}

func (m *Model) renderRow(row int, cols []int) string {
	base := styles.Cell
	if m.stripe && row%2 == 1 {
		base = styles.StripeCell
	}
	selected := row == m.grid.Cursor
	if selected {
		base = styles.SelectedRow
	}
	pad := strings.Repeat(" ", m.size.Padding())

	var b strings.Builder
	gutter := strings.Repeat(" ", gutterWidth)
	if r, err := m.delegate.Row(row); err == nil && m.marks.IsMarked(r.ID) {
		gutter = markGlyph + strings.Repeat(" ", gutterWidth-1)
	}
	b.WriteString(render(base, gutter))
	for i, col := range cols {
		key := m.delegate.ColumnKey(col)
		text := pad + fmttable.Fit(m.delegate.CellText(row, col), m.columnWidth(col), alignFor(key)) + pad
		b.WriteString(render(m.cellStyle(row, col, key, base, selected), text))
		if sep := m.separatorAfter(i, cols); sep != "" {
			if sep == fixedSeparator {
				b.WriteString(render(styles.FixedSeparator, sep))
			} else {
				b.WriteString(render(base, sep))
			}
		}
	}
	return b.String()
}

func (m *Model) cellStyle(row, col int, key string, base *lipgloss.Style, selected bool) *lipgloss.Style {
	if selected && col == m.grid.Column && m.delegate.CanSelectColumn(col) {
		return styles.SelectedCell
	}
	if key != "price" || base == nil {
		return base
	}
	r, err := m.delegate.Row(row)
	if err != nil {
		return base
	}
	var tone *lipgloss.Style
	switch stock.PriceTone(r.Price) {
	case stock.ToneDown:
		tone = styles.PriceDown
	case stock.ToneUp:
		tone = styles.PriceUp
	default:
		return base
	}
	if tone == nil {
		return base
	}
	styled := tone.Copy().Inherit(*base)
	return &styled
}

func (m *Model) renderSizeMenu() string {
	items := make([]string, len(sizes))
	for i, s := range sizes {
		label := "  " + s.String()
		style := styles.MenuItem
		if i == m.menuCursor {
			label = "> " + s.String()
			style = styles.MenuSelected
		}
		items[i] = render(style, label)
	}
	body := strings.Join(items, "\n")
	if styles.MenuBorder == nil {
		return body
	}
	return styles.MenuBorder.Render(body)
}

func (m *Model) statusText() string {
	d := m.delegate
	parts := []string{fmt.Sprintf("Rows %s", humanize.Comma(int64(d.RowCount())))}
	switch {
	case d.Loading():
		parts = append(parts, fmt.Sprintf("%s loading", m.spinner.View()))
	case d.EndOfData():
		parts = append(parts, "all rows loaded")
	}
	if s := d.SortState(); s.Key != "" && s.Direction != table.SortNone {
		parts = append(parts, fmt.Sprintf("sorted by %s %s", s.Key, sortGlyph(s.Direction)))
	}
	if n := m.marks.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d marked", n))
	}
	if m.dispatcher.RefreshEnabled() {
		parts = append(parts, "live")
	}
	parts = append(parts, m.size.String())
	return strings.Join(parts, " · ")
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	m.syncColumns()
	return m.maybeLoadMore()
}

func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return defaultVisibleRows
	}
	used := 3 // header, status, prompt
	if info := m.currentInfo(); info != "" {
		used++
	}
	if m.mode == ModeSizeMenu {
		used += len(sizes) + 2
	}
	if m.helpVisible() {
		used += strings.Count(m.help.View(m.keys), "\n") + 1
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncateRaw(text, width)
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

// truncateRaw cuts every line of an escape-laden block to width.
func truncateRaw(text string, width int) string {
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		if lipgloss.Width(p) > width {
			parts[i] = truncate.StringWithTail(p, uint(width-1), "…")
		}
	}
	return strings.Join(parts, "\n")
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw || line.style == nil {
			out[i] = line.text
			continue
		}
		out[i] = line.style.Render(line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
