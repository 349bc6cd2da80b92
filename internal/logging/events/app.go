package events

import "github.com/atomicstack/stock-table/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Print(rows int) {
	logging.Trace("app.print", map[string]interface{}{"rows": rows})
}
