package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/stock-table/internal/backend"
	"github.com/atomicstack/stock-table/internal/data/dispatcher"
	"github.com/atomicstack/stock-table/internal/table"
	"github.com/atomicstack/stock-table/internal/theme"
	uistate "github.com/atomicstack/stock-table/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Mode int

const (
	ModeGrid Mode = iota
	ModeRowInput
	ModeFind
	ModeSizeMenu
)

const initialRowInput = "5"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carries the collaborators and display settings for NewModel.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Refresh    bool

	// Context bounds page fetches. Cancel, when set, is called on quit.
	Context context.Context
	Cancel  context.CancelFunc
	Source  backend.PageSource
	Ticks   <-chan backend.Event
}

// Model implements the Bubble Tea model for the stock grid.
type Model struct {
	delegate   *table.StockDelegate
	dispatcher *dispatcher.Dispatcher
	source     backend.PageSource
	ctx        context.Context
	cancel     context.CancelFunc
	ticks      <-chan backend.Event

	grid   *uistate.Grid
	marks  uistate.Marks
	find   uistate.Query
	findAt int

	rowInput textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	menuCursor int
	size       Size
	widths     map[string]int
	stripe     bool

	mode        Mode
	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the grid UI to a delegate. The model becomes the only
// goroutine allowed to touch the delegate.
func NewModel(delegate *table.StockDelegate, opts Options) *Model {
	if delegate == nil {
		delegate = table.NewStockDelegate(nil, 0, table.DefaultCapabilities(), table.DefaultPaging())
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	source := opts.Source
	if source == nil {
		source = backend.NewSimulatedSource(nil, backend.SourceConfig{})
	}
	m := &Model{
		delegate:   delegate,
		dispatcher: dispatcher.New(delegate, opts.Refresh),
		source:     source,
		ctx:        ctx,
		cancel:     opts.Cancel,
		ticks:      opts.Ticks,
		grid:       uistate.NewGrid(delegate.RowCount(), delegate.ColumnCount(), delegate.CanLoopSelect()),
		findAt:     -1,
		help:       help.New(),
		keys:       defaultKeyMap(),
		size:       SizeMedium,
		widths:     make(map[string]int),
		mode:       ModeGrid,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	ti := textinput.New()
	ti.Prompt = "Rows: "
	ti.CharLimit = 9
	ti.Width = 10
	ti.SetValue(initialRowInput)
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.FilterPrompt != nil {
		ti.PromptStyle = styles.FilterPrompt.Copy()
	}
	if styles.Filter != nil {
		ti.TextStyle = styles.Filter.Copy()
	}
	m.rowInput = ti

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if styles.Spinner != nil {
		sp.Style = styles.Spinner.Copy()
	}
	m.spinner = sp

	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.ticks != nil {
		cmds = append(cmds, waitForTick(m.ticks))
	}
	if cmd := m.maybeLoadMore(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(pageLoadedMsg{}):     m.handlePageLoadedMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(ticksDoneMsg{}):      m.handleTicksDoneMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(copyResultMsg{}):     m.handleCopyResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Delegate exposes the table state for callers that render outside the
// program loop, such as tests.
func (m *Model) Delegate() *table.StockDelegate {
	return m.delegate
}

// Mode reports which input surface currently has focus.
func (m *Model) Mode() Mode {
	return m.mode
}

func (m *Model) quit() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	return tea.Quit
}
