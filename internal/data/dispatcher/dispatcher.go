package dispatcher

import (
	"github.com/atomicstack/stock-table/internal/backend"
	"github.com/atomicstack/stock-table/internal/logging/events"
	"github.com/atomicstack/stock-table/internal/table"
)

type Result struct {
	PricesUpdated int
}

// Dispatcher applies backend events to the delegate. It must run on the
// goroutine that owns the delegate.
type Dispatcher struct {
	delegate *table.StockDelegate
	refresh  bool
}

func New(d *table.StockDelegate, refresh bool) *Dispatcher {
	return &Dispatcher{delegate: d, refresh: refresh}
}

func (d *Dispatcher) RefreshEnabled() bool { return d.refresh }

func (d *Dispatcher) SetRefresh(enabled bool) {
	d.refresh = enabled
	events.Refresh.Toggle(enabled)
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil || d.delegate == nil {
		return res
	}
	switch evt.Kind {
	case backend.KindRefresh:
		tick, ok := evt.Data.(backend.RefreshTick)
		if !ok || !d.refresh {
			return res
		}
		res.PricesUpdated = d.delegate.RefreshPrices(tick.Stride)
		events.Refresh.Tick(tick.Stride, res.PricesUpdated)
	}
	return res
}
