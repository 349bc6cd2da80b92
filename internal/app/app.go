package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atomicstack/stock-table/internal/backend"
	fmttable "github.com/atomicstack/stock-table/internal/format/table"
	"github.com/atomicstack/stock-table/internal/logging/events"
	"github.com/atomicstack/stock-table/internal/stock"
	"github.com/atomicstack/stock-table/internal/table"
	"github.com/atomicstack/stock-table/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Rows       int
	Width      int
	Height     int
	ShowFooter bool
	Refresh    bool
	Verbose    bool
	Print      bool

	FetchDelay time.Duration
	FetchGap   time.Duration
	FailRate   float64
	Seed       uint64

	Capabilities table.Capabilities
	Paging       table.Paging
}

// newDelegate builds the row store and generator shared by Run and Print.
func newDelegate(cfg Config) (*table.StockDelegate, *stock.Generator) {
	gen := stock.NewGenerator(cfg.Seed)
	return table.NewStockDelegate(gen, cfg.Rows, cfg.Capabilities, cfg.Paging), gen
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	delegate, gen := newDelegate(cfg)
	source := backend.NewSimulatedSource(gen, sourceConfig(cfg))
	ticker := backend.NewRefreshTicker(ctx, gen, backend.DefaultRefreshConfig())
	defer ticker.Stop()

	model := ui.NewModel(delegate, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Refresh:    cfg.Refresh,
		Context:    ctx,
		Cancel:     cancel,
		Source:     source,
		Ticks:      ticker.Events(),
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func sourceConfig(cfg Config) backend.SourceConfig {
	return backend.SourceConfig{
		Delay:       cfg.FetchDelay,
		MinInterval: cfg.FetchGap,
		FailRate:    cfg.FailRate,
	}
}

// Print writes the initial rows as a plain aligned table.
func Print(w io.Writer, cfg Config) error {
	delegate, _ := newDelegate(cfg)
	cols := delegate.ColumnCount()

	rows := make([][]string, 0, delegate.RowCount()+1)
	header := make([]string, cols)
	aligns := make([]fmttable.Alignment, cols)
	for c := 0; c < cols; c++ {
		header[c] = delegate.ColumnName(c)
		switch delegate.ColumnKey(c) {
		case "id", "price":
			aligns[c] = fmttable.AlignRight
		}
	}
	rows = append(rows, header)
	for r := 0; r < delegate.RowCount(); r++ {
		line := make([]string, cols)
		for c := 0; c < cols; c++ {
			line[c] = delegate.CellText(r, c)
		}
		rows = append(rows, line)
	}

	events.App.Print(delegate.RowCount())
	lines := fmttable.Format(rows, aligns)
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
