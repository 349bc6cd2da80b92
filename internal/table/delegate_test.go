package table

import (
	"errors"
	"testing"

	"github.com/atomicstack/stock-table/internal/stock"
	"github.com/google/go-cmp/cmp"
)

func newTestDelegate(rows int) *StockDelegate {
	return NewStockDelegate(stock.NewGenerator(7), rows, DefaultCapabilities(), DefaultPaging())
}

func columnKeys(d *StockDelegate) []string {
	cols := d.Columns()
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return keys
}

func completeNextPage(t *testing.T, d *StockDelegate) {
	t.Helper()
	req, ok := d.BeginLoad()
	if !ok {
		t.Fatalf("expected BeginLoad to succeed")
	}
	if err := d.CompleteLoad(req, d.gen.Rows(req.Start, req.Size)); err != nil {
		t.Fatalf("complete load: %v", err)
	}
}

func TestMoveColumnToEnd(t *testing.T) {
	d := newTestDelegate(5)
	if !d.MoveColumn(0, 3) {
		t.Fatalf("expected move to succeed")
	}
	want := []string{"symbol", "name", "price", "id"}
	if diff := cmp.Diff(want, columnKeys(d)); diff != "" {
		t.Fatalf("column order mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveColumnKeepsPermutation(t *testing.T) {
	original := columnKeys(newTestDelegate(0))
	for from := 0; from < len(original); from++ {
		for to := 0; to < len(original); to++ {
			d := newTestDelegate(0)
			d.MoveColumn(from, to)
			got := columnKeys(d)
			if len(got) != len(original) {
				t.Fatalf("move %d->%d changed column count to %d", from, to, len(got))
			}
			seen := map[string]int{}
			for _, k := range got {
				seen[k]++
			}
			for _, k := range original {
				if seen[k] != 1 {
					t.Fatalf("move %d->%d: key %q appears %d times in %v", from, to, k, seen[k], got)
				}
			}
			if got[to] != original[from] {
				t.Fatalf("move %d->%d: expected %q at %d, got %v", from, to, original[from], to, got)
			}
		}
	}
}

func TestMoveColumnRejectedWhenDisabled(t *testing.T) {
	caps := DefaultCapabilities()
	caps.ColumnOrder = false
	d := NewStockDelegate(stock.NewGenerator(1), 3, caps, DefaultPaging())
	if d.MoveColumn(0, 2) {
		t.Fatalf("expected move to be refused")
	}
	if diff := cmp.Diff([]string{"id", "symbol", "name", "price"}, columnKeys(d)); diff != "" {
		t.Fatalf("columns changed (-want +got):\n%s", diff)
	}
	if d.MoveColumn(9, 0) || d.MoveColumn(0, 9) {
		t.Fatalf("expected out of range moves to be refused")
	}
}

func TestSortByID(t *testing.T) {
	d := newTestDelegate(50)
	if !d.PerformSort(0, SortDescending) {
		t.Fatalf("expected id column to sort")
	}
	for i := 1; i < d.RowCount(); i++ {
		if d.rows[i-1].ID < d.rows[i].ID {
			t.Fatalf("rows not descending at %d: %d < %d", i, d.rows[i-1].ID, d.rows[i].ID)
		}
	}
	before := stock.Clone(d.rows)
	d.PerformSort(0, SortDescending)
	if diff := cmp.Diff(before, d.rows); diff != "" {
		t.Fatalf("second descending sort changed order (-before +after):\n%s", diff)
	}

	d.PerformSort(0, SortAscending)
	for i := 1; i < d.RowCount(); i++ {
		if d.rows[i-1].ID > d.rows[i].ID {
			t.Fatalf("rows not ascending at %d", i)
		}
	}
	if got := d.SortState(); got.Key != "id" || got.Direction != SortAscending {
		t.Fatalf("unexpected sort state %#v", got)
	}
}

func TestSortFollowsMovedColumn(t *testing.T) {
	d := newTestDelegate(20)
	d.MoveColumn(0, 3)
	if !d.PerformSort(3, SortDescending) {
		t.Fatalf("expected sort on moved id column")
	}
	if d.rows[0].ID != 19 {
		t.Fatalf("expected highest id first, got %d", d.rows[0].ID)
	}
}

func TestSortNoOps(t *testing.T) {
	d := newTestDelegate(10)
	d.PerformSort(0, SortDescending)
	before := stock.Clone(d.rows)

	if d.PerformSort(2, SortAscending) {
		t.Fatalf("name column is not sortable")
	}
	if d.PerformSort(1, SortAscending) {
		t.Fatalf("symbol has no ordering and must be a no-op")
	}
	if d.PerformSort(42, SortAscending) {
		t.Fatalf("out of range column must be a no-op")
	}
	if diff := cmp.Diff(before, d.rows); diff != "" {
		t.Fatalf("rows changed by no-op sorts:\n%s", diff)
	}

	caps := DefaultCapabilities()
	caps.ColumnSort = false
	off := NewStockDelegate(stock.NewGenerator(1), 10, caps, DefaultPaging())
	if off.IsSortable(0) || off.PerformSort(0, SortDescending) {
		t.Fatalf("expected sorting to be disabled")
	}
}

func TestMetadataDefaults(t *testing.T) {
	d := newTestDelegate(1)
	if got := d.ColumnName(-1); got != placeholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := d.ColumnName(4); got != placeholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if _, ok := d.ColumnWidth(4); ok {
		t.Fatalf("expected no width constraint out of range")
	}
	if w, ok := d.ColumnWidth(0); !ok || w <= 0 {
		t.Fatalf("expected width for column 0, got %d %v", w, ok)
	}
	if d.CanResizeColumn(0) || d.CanResizeColumn(1) || !d.CanResizeColumn(2) || d.CanResizeColumn(7) {
		t.Fatalf("unexpected resize flags")
	}
	if d.ColumnFixed(0) != FixedNone {
		t.Fatalf("expected no fixed columns by default")
	}
	d.SetFixedColumns(true)
	if d.ColumnFixed(3) != FixedLeft || d.ColumnFixed(4) != FixedNone {
		t.Fatalf("unexpected fixed sides")
	}
	if d.IsSortable(-3) || d.CanMoveColumn(10) || d.CanSelectColumn(-1) {
		t.Fatalf("out of range capability queries must be false")
	}
}

func TestCellProjection(t *testing.T) {
	d := newTestDelegate(3)
	d.rows[1].Price = 12.5
	v, err := d.Cell(1, 3)
	if err != nil {
		t.Fatalf("cell: %v", err)
	}
	if v.Text != "12.500" {
		t.Fatalf("expected formatted price, got %q", v.Text)
	}
	if got := d.CellText(2, 0); got != "2" {
		t.Fatalf("expected id 2, got %q", got)
	}
	if _, err := d.Cell(3, 0); !errors.Is(err, ErrInvalidRow) {
		t.Fatalf("expected ErrInvalidRow, got %v", err)
	}
	if _, err := d.Cell(0, 4); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if got := d.CellText(9, 9); got != placeholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
	d.columns = append(d.columns, Column{Key: "volume", Name: "Volume"})
	if got := d.CellText(0, 4); got != placeholder {
		t.Fatalf("expected placeholder for unknown key, got %q", got)
	}
}

func TestLoadMoreLifecycle(t *testing.T) {
	d := newTestDelegate(5)
	if !d.CanLoadMore() {
		t.Fatalf("expected fresh delegate to load more")
	}
	req, ok := d.BeginLoad()
	if !ok {
		t.Fatalf("expected first BeginLoad to succeed")
	}
	if d.CanLoadMore() {
		t.Fatalf("expected CanLoadMore false while loading")
	}
	if _, ok := d.BeginLoad(); ok {
		t.Fatalf("expected second concurrent fetch to be refused")
	}
	if req.Start != 5 || req.Size != 200 {
		t.Fatalf("unexpected request %#v", req)
	}
	if err := d.CompleteLoad(req, d.gen.Rows(req.Start, req.Size)); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if d.RowCount() != 205 {
		t.Fatalf("expected 205 rows, got %d", d.RowCount())
	}
	if !d.CanLoadMore() {
		t.Fatalf("expected CanLoadMore true after completion")
	}
	if last, _ := d.Row(204); last.ID != 204 {
		t.Fatalf("expected sequential ids, got %d", last.ID)
	}
}

func TestLoadMoreUntilEndOfData(t *testing.T) {
	d := newTestDelegate(5)
	pages := 0
	for d.CanLoadMore() {
		completeNextPage(t, d)
		pages++
		if pages > 100 {
			t.Fatalf("paging never reached end of data")
		}
	}
	if !d.EndOfData() {
		t.Fatalf("expected end of data")
	}
	if d.RowCount() < 6000 {
		t.Fatalf("expected at least 6000 rows, got %d", d.RowCount())
	}
	if d.CanLoadMore() {
		t.Fatalf("expected no further loads")
	}
	if _, ok := d.BeginLoad(); ok {
		t.Fatalf("expected BeginLoad refused at end of data")
	}
}

func TestResetClearsPagingState(t *testing.T) {
	d := newTestDelegate(5)
	for d.CanLoadMore() {
		completeNextPage(t, d)
	}
	d.Reset(12)
	if d.RowCount() != 12 || d.Loading() || d.EndOfData() {
		t.Fatalf("unexpected state after reset: rows=%d loading=%v eof=%v", d.RowCount(), d.Loading(), d.EndOfData())
	}

	d.BeginLoad()
	d.Reset(0)
	if d.RowCount() != 0 || d.Loading() || !d.CanLoadMore() {
		t.Fatalf("expected reset to clear loading")
	}
}

func TestStalePageDropped(t *testing.T) {
	d := newTestDelegate(5)
	req, _ := d.BeginLoad()
	d.Reset(3)
	err := d.CompleteLoad(req, d.gen.Rows(req.Start, req.Size))
	if !errors.Is(err, ErrStalePage) {
		t.Fatalf("expected ErrStalePage, got %v", err)
	}
	if d.RowCount() != 3 {
		t.Fatalf("stale page must not be applied, rows=%d", d.RowCount())
	}
	if err := d.CompleteLoad(PageRequest{Epoch: d.Epoch()}, nil); !errors.Is(err, ErrNoPageInFlight) {
		t.Fatalf("expected ErrNoPageInFlight, got %v", err)
	}
}

func TestFailLoadPermitsRetry(t *testing.T) {
	d := newTestDelegate(5)
	req, _ := d.BeginLoad()
	boom := errors.New("boom")
	if err := d.FailLoad(req, boom); err != nil {
		t.Fatalf("fail load: %v", err)
	}
	if d.Loading() || !errors.Is(d.LastError(), boom) {
		t.Fatalf("expected loading cleared and error recorded")
	}
	if !d.CanLoadMore() {
		t.Fatalf("expected retry permitted")
	}
	completeNextPage(t, d)
	if d.LastError() != nil {
		t.Fatalf("expected error cleared by successful page")
	}
}

func TestRefreshPricesStride(t *testing.T) {
	d := newTestDelegate(10)
	if got := d.RefreshPrices(3); got != 4 {
		t.Fatalf("expected rows 0,3,6,9 refreshed, got %d", got)
	}
	if got := d.RefreshPrices(0); got != 0 {
		t.Fatalf("expected zero stride to do nothing, got %d", got)
	}
	for i, r := range d.rows {
		if r.Price < stock.PriceMin || r.Price > stock.PriceMax {
			t.Fatalf("row %d price %f out of range", i, r.Price)
		}
	}
}
