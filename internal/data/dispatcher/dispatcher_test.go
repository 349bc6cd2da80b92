package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/stock-table/internal/backend"
	"github.com/atomicstack/stock-table/internal/stock"
	"github.com/atomicstack/stock-table/internal/table"
)

func newDelegate(rows int) *table.StockDelegate {
	return table.NewStockDelegate(stock.NewGenerator(11), rows, table.DefaultCapabilities(), table.DefaultPaging())
}

func TestHandleIgnoresTicksWhileRefreshDisabled(t *testing.T) {
	d := New(newDelegate(10), false)
	res := d.Handle(backend.Event{Kind: backend.KindRefresh, Data: backend.RefreshTick{Stride: 1}})
	if res.PricesUpdated != 0 {
		t.Fatalf("expected no updates while disabled, got %d", res.PricesUpdated)
	}
}

func TestHandleAppliesTick(t *testing.T) {
	d := New(newDelegate(10), false)
	d.SetRefresh(true)
	if !d.RefreshEnabled() {
		t.Fatalf("expected refresh enabled")
	}
	res := d.Handle(backend.Event{Kind: backend.KindRefresh, Data: backend.RefreshTick{Stride: 5}})
	if res.PricesUpdated != 2 {
		t.Fatalf("expected rows 0 and 5 updated, got %d", res.PricesUpdated)
	}
}

func TestHandleSkipsErrorsAndBadPayloads(t *testing.T) {
	d := New(newDelegate(10), true)
	if res := d.Handle(backend.Event{Kind: backend.KindRefresh, Err: errors.New("boom")}); res.PricesUpdated != 0 {
		t.Fatalf("expected error events ignored")
	}
	if res := d.Handle(backend.Event{Kind: backend.KindRefresh, Data: "nope"}); res.PricesUpdated != 0 {
		t.Fatalf("expected bad payload ignored")
	}
}
