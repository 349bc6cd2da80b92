package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/stock-table/internal/table"
	"github.com/google/go-cmp/cmp"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Rows != 5 {
		t.Fatalf("expected 5 rows, got %d", cfg.App.Rows)
	}
	if cfg.App.FetchDelay != time.Second {
		t.Fatalf("expected 1s fetch delay, got %s", cfg.App.FetchDelay)
	}
	if cfg.App.FetchGap != 250*time.Millisecond {
		t.Fatalf("expected 250ms fetch interval, got %s", cfg.App.FetchGap)
	}
	p := cfg.App.Paging
	if p.PageSize != 200 || p.MaxRows != 6000 || p.Threshold != 150 {
		t.Fatalf("unexpected paging %#v", p)
	}
	if !cfg.App.Capabilities.ColumnOrder || cfg.App.Capabilities.FixedColumns {
		t.Fatalf("unexpected capabilities %#v", cfg.App.Capabilities)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	env := []string{"STOCK_TABLE_ROWS=40", "STOCK_TABLE_REFRESH=true", "STOCK_TABLE_SEED=9"}
	cfg, err := LoadArgs([]string{"--rows", "12", "--fixed-cols"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Rows != 12 {
		t.Fatalf("flag should win over env, got %d", cfg.App.Rows)
	}
	if !cfg.App.Refresh || cfg.App.Seed != 9 {
		t.Fatalf("expected env fallbacks applied: %#v", cfg.App)
	}
	if !cfg.App.Capabilities.FixedColumns {
		t.Fatalf("expected fixed columns enabled")
	}
	if cfg.Flags["rows"] != "12" || cfg.Flags["fixedCols"] != "true" {
		t.Fatalf("unexpected flag summary %#v", cfg.Flags)
	}
}

func TestInvalidEnvironmentIgnored(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"STOCK_TABLE_ROWS=abc", "STOCK_TABLE_FETCH_DELAY=soon"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Rows != 5 || cfg.App.FetchDelay != time.Second {
		t.Fatalf("expected defaults for unparseable env, got %#v", cfg.App)
	}
}

func TestConfigFileLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.yaml")
	body := strings.Join([]string{
		"rows: 30",
		"refresh: true",
		"fetch_delay: 250ms",
		"capabilities:",
		"  column_resize: true",
		"  column_order: false",
		"  column_sort: true",
		"paging:",
		"  page_size: 50",
		"  max_rows: 500",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadArgs([]string{"--config", path}, []string{"STOCK_TABLE_ROWS=31"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Rows != 31 {
		t.Fatalf("env should win over file, got %d", cfg.App.Rows)
	}
	if !cfg.App.Refresh || cfg.App.FetchDelay != 250*time.Millisecond {
		t.Fatalf("expected file values, got %#v", cfg.App)
	}
	caps := cfg.App.Capabilities
	if caps.ColumnOrder {
		t.Fatalf("expected column order disabled by file")
	}
	if !caps.LoopSelection || !caps.ColumnSelection || !caps.ColumnResize || !caps.ColumnSort {
		t.Fatalf("expected omitted capabilities to keep defaults, got %#v", caps)
	}
	if cfg.App.Paging.PageSize != 50 || cfg.App.Paging.MaxRows != 500 || cfg.App.Paging.Threshold != 150 {
		t.Fatalf("unexpected paging %#v", cfg.App.Paging)
	}
	if cfg.File != path {
		t.Fatalf("expected file path recorded, got %q", cfg.File)
	}
}

func TestPartialCapabilitiesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caps.yaml")
	if err := os.WriteFile(path, []byte("capabilities:\n  fixed_columns: true\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadArgs([]string{"--config", path}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := table.DefaultCapabilities()
	want.FixedColumns = true
	if diff := cmp.Diff(want, cfg.App.Capabilities); diff != "" {
		t.Fatalf("unexpected capabilities (-want +got):\n%s", diff)
	}
}

func TestFetchIntervalLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gap.yaml")
	if err := os.WriteFile(path, []byte("fetch_interval: 2s\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadArgs([]string{"--config", path}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.FetchGap != 2*time.Second {
		t.Fatalf("expected file interval, got %s", cfg.App.FetchGap)
	}
	cfg, err = LoadArgs([]string{"--config", path}, []string{"STOCK_TABLE_FETCH_INTERVAL=40ms"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.FetchGap != 40*time.Millisecond {
		t.Fatalf("expected env interval, got %s", cfg.App.FetchGap)
	}
	cfg, err = LoadArgs([]string{"--config", path, "--fetch-interval", "0s"}, []string{"STOCK_TABLE_FETCH_INTERVAL=40ms"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.FetchGap != 0 || cfg.Flags["fetchGap"] != "0s" {
		t.Fatalf("expected flag interval, got %s", cfg.App.FetchGap)
	}
}

func TestConfigFileErrors(t *testing.T) {
	if _, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("fetch_delay: later\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadArgs([]string{"--config", path}, nil); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}

func TestUnknownFlagRejected(t *testing.T) {
	if _, err := LoadArgs([]string{"--socket", "x"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := map[string]func(*Config){
		"negative rows":  func(c *Config) { c.App.Rows = -1 },
		"zero page size": func(c *Config) { c.App.Paging.PageSize = 0 },
		"rows over max":  func(c *Config) { c.App.Rows = 7000 },
		"fail rate":      func(c *Config) { c.App.FailRate = 1.5 },
		"negative delay": func(c *Config) { c.App.FetchDelay = -time.Second },
		"negative gap":   func(c *Config) { c.App.FetchGap = -time.Second },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
