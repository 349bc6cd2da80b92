package events

import "github.com/atomicstack/stock-table/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type InputTracer struct{}

var (
	UI     = UITracer{}
	Action = ActionTracer{}
	Input  = InputTracer{}
)

func (UITracer) SelectRow(row int) {
	logging.Trace("ui.select.row", map[string]interface{}{"row": row})
}

func (UITracer) SelectColumn(col int, key string) {
	logging.Trace("ui.select.column", map[string]interface{}{"column": col, "key": key})
}

func (UITracer) ColumnWidths(widths map[string]int) {
	logging.Trace("ui.column.widths", map[string]interface{}{"widths": widths})
}

func (UITracer) Size(size string) {
	logging.Trace("ui.size", map[string]interface{}{"size": size})
}

func (UITracer) Stripe(enabled bool) {
	logging.Trace("ui.stripe", map[string]interface{}{"enabled": enabled})
}

func (UITracer) Find(query string, row int) {
	logging.Trace("ui.find", map[string]interface{}{"query": query, "row": row})
}

func (UITracer) Copy(id int, err error) {
	payload := map[string]interface{}{"id": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ui.copy", payload)
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (InputTracer) Commit(text string, rows int) {
	logging.Trace("input.commit", map[string]interface{}{"text": text, "rows": rows})
}

func (InputTracer) Reject(text string) {
	logging.Trace("input.reject", map[string]interface{}{"text": text})
}
