package events

import "github.com/atomicstack/stock-table/internal/logging"

type TableTracer struct{}

type RefreshTracer struct{}

var (
	Table   = TableTracer{}
	Refresh = RefreshTracer{}
)

func (TableTracer) MoveColumn(from, to int, keys []string) {
	logging.Trace("table.column.move", map[string]interface{}{"from": from, "to": to, "columns": keys})
}

func (TableTracer) Sort(key, direction string) {
	logging.Trace("table.sort", map[string]interface{}{"column": key, "direction": direction})
}

func (TableTracer) LoadMore(epoch uint64, start, size int) {
	logging.Trace("table.page.request", map[string]interface{}{"epoch": epoch, "start": start, "size": size})
}

func (TableTracer) PageLoaded(epoch uint64, rows, total int, eof bool) {
	logging.Trace("table.page.loaded", map[string]interface{}{"epoch": epoch, "rows": rows, "total": total, "eof": eof})
}

func (TableTracer) PageFailed(epoch uint64, err error) {
	payload := map[string]interface{}{"epoch": epoch}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("table.page.failed", payload)
}

func (TableTracer) PageDropped(epoch uint64, reason string) {
	logging.Trace("table.page.dropped", map[string]interface{}{"epoch": epoch, "reason": reason})
}

func (TableTracer) Reset(rows int) {
	logging.Trace("table.reset", map[string]interface{}{"rows": rows})
}

func (TableTracer) FixedColumns(enabled bool) {
	logging.Trace("table.fixed", map[string]interface{}{"enabled": enabled})
}

func (RefreshTracer) Toggle(enabled bool) {
	logging.Trace("refresh.toggle", map[string]interface{}{"enabled": enabled})
}

func (RefreshTracer) Tick(stride, updated int) {
	logging.Trace("refresh.tick", map[string]interface{}{"stride": stride, "updated": updated})
}
