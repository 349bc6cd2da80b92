// Package table implements the data delegate behind the stock ticker grid:
// row and column storage, metadata queries, column reordering, sorting, and
// incremental page loading. The delegate performs no I/O and takes no locks;
// it must only be touched from the goroutine that owns it (the Bubble Tea
// Update loop in this program).
package table

import (
	"fmt"
	"slices"

	"github.com/atomicstack/stock-table/internal/stock"
)

const placeholder = "--"

// Delegate supplies grid data and metadata on demand.
type Delegate interface {
	RowCount() int
	ColumnCount() int
	ColumnName(col int) string
	ColumnWidth(col int) (int, bool)
	ColumnFixed(col int) FixedSide
	CanResizeColumn(col int) bool
	CanSelectColumn(col int) bool
	CanMoveColumn(col int) bool
	CanLoopSelect() bool
	IsSortable(col int) bool
	Cell(row, col int) (Value, error)
	CellText(row, col int) string
	MoveColumn(from, to int) bool
	PerformSort(col int, dir SortDirection) bool
	CanLoadMore() bool
	LoadMoreThreshold() int
}

// PageRequest identifies one outstanding page fetch.
type PageRequest struct {
	Epoch uint64
	Start int
	Size  int
}

// StockDelegate is the Delegate for stock rows.
type StockDelegate struct {
	rows    []stock.Stock
	columns []Column
	caps    Capabilities
	paging  Paging
	gen     *stock.Generator

	sort    SortState
	loading bool
	eof     bool
	epoch   uint64
	lastErr error
}

var _ Delegate = (*StockDelegate)(nil)

// NewStockDelegate builds a delegate holding count freshly generated rows.
func NewStockDelegate(gen *stock.Generator, count int, caps Capabilities, paging Paging) *StockDelegate {
	if gen == nil {
		gen = stock.NewGenerator(0)
	}
	defaults := DefaultPaging()
	if paging.PageSize <= 0 {
		paging.PageSize = defaults.PageSize
	}
	if paging.MaxRows <= 0 {
		paging.MaxRows = defaults.MaxRows
	}
	if paging.Threshold <= 0 {
		paging.Threshold = defaults.Threshold
	}
	if count < 0 {
		count = 0
	}
	return &StockDelegate{
		rows:    gen.Rows(0, count),
		columns: DefaultColumns(),
		caps:    caps,
		paging:  paging,
		gen:     gen,
	}
}

func (d *StockDelegate) RowCount() int    { return len(d.rows) }
func (d *StockDelegate) ColumnCount() int { return len(d.columns) }

func (d *StockDelegate) column(col int) (Column, bool) {
	if col < 0 || col >= len(d.columns) {
		return Column{}, false
	}
	return d.columns[col], true
}

// ColumnName returns the display name, or a placeholder for a bad index.
func (d *StockDelegate) ColumnName(col int) string {
	c, ok := d.column(col)
	if !ok {
		return placeholder
	}
	return c.Name
}

// ColumnKey returns the stable key of the column at col.
func (d *StockDelegate) ColumnKey(col int) string {
	c, ok := d.column(col)
	if !ok {
		return ""
	}
	return c.Key
}

// ColumnWidth returns the preferred width in cells. The second result is
// false when the index carries no width constraint.
func (d *StockDelegate) ColumnWidth(col int) (int, bool) {
	c, ok := d.column(col)
	if !ok {
		return 0, false
	}
	return c.Width, true
}

// ColumnFixed pins the first four columns to the left when fixed columns
// are enabled.
func (d *StockDelegate) ColumnFixed(col int) FixedSide {
	if !d.caps.FixedColumns {
		return FixedNone
	}
	if col >= 0 && col < 4 && col < len(d.columns) {
		return FixedLeft
	}
	return FixedNone
}

// CanResizeColumn keeps the first two columns at their preferred width.
func (d *StockDelegate) CanResizeColumn(col int) bool {
	_, ok := d.column(col)
	return ok && d.caps.ColumnResize && col > 1
}

func (d *StockDelegate) CanSelectColumn(col int) bool {
	_, ok := d.column(col)
	return ok && d.caps.ColumnSelection
}

func (d *StockDelegate) CanMoveColumn(col int) bool {
	_, ok := d.column(col)
	return ok && d.caps.ColumnOrder
}

func (d *StockDelegate) CanLoopSelect() bool { return d.caps.LoopSelection }

// IsSortable reports whether sorting is enabled and the column declares it.
func (d *StockDelegate) IsSortable(col int) bool {
	if !d.caps.ColumnSort {
		return false
	}
	c, ok := d.column(col)
	return ok && c.Sortable
}

// SortState returns the last sort applied.
func (d *StockDelegate) SortState() SortState { return d.sort }

// Capabilities returns the active capability set.
func (d *StockDelegate) Capabilities() Capabilities { return d.caps }

// SetFixedColumns toggles pinning of the leading columns.
func (d *StockDelegate) SetFixedColumns(enabled bool) { d.caps.FixedColumns = enabled }

// Columns returns a copy of the current column order.
func (d *StockDelegate) Columns() []Column {
	return slices.Clone(d.columns)
}

// Row returns a copy of the row at index.
func (d *StockDelegate) Row(row int) (stock.Stock, error) {
	if row < 0 || row >= len(d.rows) {
		return stock.Stock{}, fmt.Errorf("row %d of %d: %w", row, len(d.rows), ErrInvalidRow)
	}
	return d.rows[row], nil
}

// Cell projects the field named by the column key out of the row.
func (d *StockDelegate) Cell(row, col int) (Value, error) {
	if row < 0 || row >= len(d.rows) {
		return Value{}, fmt.Errorf("row %d of %d: %w", row, len(d.rows), ErrInvalidRow)
	}
	c, ok := d.column(col)
	if !ok {
		return Value{}, fmt.Errorf("column %d of %d: %w", col, len(d.columns), ErrInvalidColumn)
	}
	f, ok := fields[c.Key]
	if !ok || f.value == nil {
		return Value{Text: placeholder}, nil
	}
	return f.value(d.rows[row]), nil
}

// CellText is Cell with failures collapsed to the placeholder.
func (d *StockDelegate) CellText(row, col int) string {
	v, err := d.Cell(row, col)
	if err != nil {
		return placeholder
	}
	return v.Text
}

// MoveColumn removes the column at from and reinserts it at to. It reports
// whether the order changed.
func (d *StockDelegate) MoveColumn(from, to int) bool {
	if !d.CanMoveColumn(from) {
		return false
	}
	if to < 0 || to >= len(d.columns) || from == to {
		return false
	}
	c := d.columns[from]
	d.columns = slices.Delete(d.columns, from, from+1)
	d.columns = slices.Insert(d.columns, to, c)
	return true
}

// PerformSort orders the rows by the column at col. Columns without a
// defined ordering are left alone. SortNone restores id order.
func (d *StockDelegate) PerformSort(col int, dir SortDirection) bool {
	if !d.IsSortable(col) {
		return false
	}
	c := d.columns[col]
	f, ok := fields[c.Key]
	if !ok || f.compare == nil {
		return false
	}
	switch dir {
	case SortDescending:
		slices.SortStableFunc(d.rows, func(a, b stock.Stock) int { return f.compare(b, a) })
	case SortAscending:
		slices.SortStableFunc(d.rows, f.compare)
	default:
		slices.SortStableFunc(d.rows, fields["id"].compare)
	}
	d.sort = SortState{Key: c.Key, Direction: dir}
	return true
}

// CanLoadMore is true while no fetch is outstanding and more pages exist.
func (d *StockDelegate) CanLoadMore() bool { return !d.loading && !d.eof }

// LoadMoreThreshold is how close to the last row the cursor may get before
// the caller should request the next page.
func (d *StockDelegate) LoadMoreThreshold() int { return d.paging.Threshold }

func (d *StockDelegate) Loading() bool   { return d.loading }
func (d *StockDelegate) EndOfData() bool { return d.eof }
func (d *StockDelegate) Epoch() uint64   { return d.epoch }
func (d *StockDelegate) Paging() Paging  { return d.paging }

// LastError returns the error of the most recent failed fetch, cleared by the
// next successful page or a reset.
func (d *StockDelegate) LastError() error { return d.lastErr }

// BeginLoad marks a page fetch as outstanding and describes what to fetch.
// It returns false when a fetch is already running or no pages remain.
func (d *StockDelegate) BeginLoad() (PageRequest, bool) {
	if !d.CanLoadMore() {
		return PageRequest{}, false
	}
	d.loading = true
	return PageRequest{Epoch: d.epoch, Start: d.nextID(), Size: d.paging.PageSize}, true
}

// CompleteLoad appends a fetched page. Results for a superseded epoch or
// arriving with no fetch outstanding are rejected untouched.
func (d *StockDelegate) CompleteLoad(req PageRequest, rows []stock.Stock) error {
	if err := d.checkPending(req); err != nil {
		return err
	}
	d.rows = append(d.rows, rows...)
	d.loading = false
	d.lastErr = nil
	d.eof = len(d.rows) >= d.paging.MaxRows
	return nil
}

// FailLoad records a failed fetch. Loading is cleared so the page may be
// requested again.
func (d *StockDelegate) FailLoad(req PageRequest, cause error) error {
	if err := d.checkPending(req); err != nil {
		return err
	}
	d.loading = false
	d.lastErr = cause
	return nil
}

func (d *StockDelegate) checkPending(req PageRequest) error {
	if req.Epoch != d.epoch {
		return fmt.Errorf("epoch %d, current %d: %w", req.Epoch, d.epoch, ErrStalePage)
	}
	if !d.loading {
		return ErrNoPageInFlight
	}
	return nil
}

// Reset discards every row and regenerates count rows. Paging state starts
// over and any fetch still in flight becomes stale.
func (d *StockDelegate) Reset(count int) {
	if count < 0 {
		count = 0
	}
	d.rows = d.gen.Rows(0, count)
	d.loading = false
	d.eof = false
	d.lastErr = nil
	d.sort = SortState{}
	d.epoch++
}

// RefreshPrices gives every row whose index is a multiple of stride a new
// random price and returns how many rows changed.
func (d *StockDelegate) RefreshPrices(stride int) int {
	if stride <= 0 {
		return 0
	}
	updated := 0
	for i := 0; i < len(d.rows); i += stride {
		d.rows[i].Price = d.gen.Price()
		updated++
	}
	return updated
}

// nextID continues the id sequence past the largest id handed out so far.
func (d *StockDelegate) nextID() int {
	next := 0
	for _, r := range d.rows {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	return next
}
