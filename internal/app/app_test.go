package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/stock-table/internal/backend"
	"github.com/atomicstack/stock-table/internal/stock"
	"github.com/atomicstack/stock-table/internal/table"
)

func TestPrintWritesHeaderAndRows(t *testing.T) {
	cfg := Config{
		Rows:         3,
		Seed:         7,
		Capabilities: table.DefaultCapabilities(),
		Paging:       table.DefaultPaging(),
	}
	var buf bytes.Buffer
	if err := Print(&buf, cfg); err != nil {
		t.Fatalf("print: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d:\n%s", len(lines), buf.String())
	}
	for _, name := range []string{"ID", "Symbol", "Name", "Price"} {
		if !strings.Contains(lines[0], name) {
			t.Fatalf("expected %q in header %q", name, lines[0])
		}
	}
	rows := stock.NewGenerator(7).Rows(0, 3)
	for i, row := range rows {
		line := lines[i+1]
		if !strings.Contains(line, row.Symbol) {
			t.Fatalf("expected symbol %q on line %d: %q", row.Symbol, i+1, line)
		}
		if !strings.HasSuffix(line, stock.FormatPrice(0)) {
			t.Fatalf("expected unset price at end of line %d: %q", i+1, line)
		}
	}
}

func TestPrintEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, Config{Paging: table.DefaultPaging()}); err != nil {
		t.Fatalf("print: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

func TestSourceConfigCarriesFetchSettings(t *testing.T) {
	cfg := Config{FetchDelay: time.Second, FetchGap: 250 * time.Millisecond, FailRate: 0.25}
	want := backend.SourceConfig{Delay: time.Second, MinInterval: 250 * time.Millisecond, FailRate: 0.25}
	if got := sourceConfig(cfg); got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}
