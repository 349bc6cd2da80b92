package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/stock-table/internal/backend"
	"github.com/atomicstack/stock-table/internal/logging"
	"github.com/atomicstack/stock-table/internal/logging/events"
	"github.com/atomicstack/stock-table/internal/stock"
	"github.com/atomicstack/stock-table/internal/table"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForTick(ch <-chan backend.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return ticksDoneMsg{}
		}
		return tickMsg{event: evt}
	}
}

type tickMsg struct {
	event backend.Event
}

type ticksDoneMsg struct{}

// pageLoadedMsg carries a finished fetch back to the owner loop.
type pageLoadedMsg struct {
	req  table.PageRequest
	rows []stock.Stock
	err  error
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(tickMsg)
	if !ok {
		return nil
	}
	m.dispatcher.Handle(tick.event)
	if m.ticks != nil {
		return waitForTick(m.ticks)
	}
	return nil
}

func (m *Model) handleTicksDoneMsg(msg tea.Msg) tea.Cmd {
	m.ticks = nil
	return nil
}

// maybeLoadMore requests the next page once the cursor is within the
// delegate's threshold of the last row.
func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.delegate.CanLoadMore() {
		return nil
	}
	if m.grid.RemainingRows() >= m.delegate.LoadMoreThreshold() {
		return nil
	}
	return m.requestNextPage()
}

// requestNextPage marks a fetch outstanding and starts it off the owner
// goroutine. It returns nil when a fetch is already running or paging ended.
func (m *Model) requestNextPage() tea.Cmd {
	req, ok := m.delegate.BeginLoad()
	if !ok {
		return nil
	}
	events.Table.LoadMore(req.Epoch, req.Start, req.Size)
	return tea.Batch(m.spinner.Tick, fetchPageCmd(m.ctx, m.source, req))
}

func fetchPageCmd(ctx context.Context, source backend.PageSource, req table.PageRequest) tea.Cmd {
	return func() tea.Msg {
		rows, err := source.FetchPage(ctx, req.Start, req.Size)
		return pageLoadedMsg{req: req, rows: rows, err: err}
	}
}

func (m *Model) handlePageLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(pageLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.err != nil {
		if err := m.delegate.FailLoad(loaded.req, loaded.err); err != nil {
			events.Table.PageDropped(loaded.req.Epoch, err.Error())
			return nil
		}
		events.Table.PageFailed(loaded.req.Epoch, loaded.err)
		if errors.Is(loaded.err, context.Canceled) {
			return nil
		}
		logging.Errorf("load rows from %d: %w", loaded.req.Start, loaded.err)
		m.errMsg = fmt.Sprintf("Loading rows failed: %v (press L to retry)", loaded.err)
		m.forceClearInfo()
		return nil
	}
	if err := m.delegate.CompleteLoad(loaded.req, loaded.rows); err != nil {
		events.Table.PageDropped(loaded.req.Epoch, err.Error())
		return nil
	}
	events.Table.PageLoaded(loaded.req.Epoch, len(loaded.rows), m.delegate.RowCount(), m.delegate.EndOfData())
	m.errMsg = ""
	m.syncGrid()
	return m.maybeLoadMore()
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !m.delegate.Loading() {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}
