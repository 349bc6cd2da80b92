package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/stock-table/internal/app"
	"github.com/atomicstack/stock-table/internal/table"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig     = "STOCK_TABLE_CONFIG"
	envRows       = "STOCK_TABLE_ROWS"
	envWidth      = "STOCK_TABLE_WIDTH"
	envHeight     = "STOCK_TABLE_HEIGHT"
	envShowFooter = "STOCK_TABLE_FOOTER"
	envRefresh    = "STOCK_TABLE_REFRESH"
	envVerbose    = "STOCK_TABLE_VERBOSE"
	envTrace      = "STOCK_TABLE_TRACE"
	envLogFile    = "STOCK_TABLE_LOG_FILE"
	envPageSize   = "STOCK_TABLE_PAGE_SIZE"
	envMaxRows    = "STOCK_TABLE_MAX_ROWS"
	envFetchDelay = "STOCK_TABLE_FETCH_DELAY"
	envFetchGap   = "STOCK_TABLE_FETCH_INTERVAL"
	envFailRate   = "STOCK_TABLE_FAIL_RATE"
	envSeed       = "STOCK_TABLE_SEED"
	envFixedCols  = "STOCK_TABLE_FIXED_COLS"
	envPrint      = "STOCK_TABLE_PRINT"
)

const (
	defaultRows       = 5
	defaultFetchDelay = time.Second
	defaultFetchGap   = 250 * time.Millisecond
)

// fileConfig mirrors the optional YAML file. Pointer fields distinguish
// "absent" from zero values.
type fileConfig struct {
	Rows         *int                `yaml:"rows"`
	Width        *int                `yaml:"width"`
	Height       *int                `yaml:"height"`
	Footer       *bool               `yaml:"footer"`
	Refresh      *bool               `yaml:"refresh"`
	Verbose      *bool               `yaml:"verbose"`
	FetchDelay   *string             `yaml:"fetch_delay"`
	FetchGap     *string             `yaml:"fetch_interval"`
	FailRate     *float64            `yaml:"fail_rate"`
	Seed         *uint64             `yaml:"seed"`
	Capabilities *table.Capabilities `yaml:"capabilities"`
	Paging       *table.Paging       `yaml:"paging"`
}

// Load parses configuration from CLI arguments, environment variables, and
// the optional YAML file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence from
// lowest to highest: built-in defaults, YAML file, environment, flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("stock-table", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configPath := fs.String("config", "", "path to a YAML configuration file")
	rows := fs.Int("rows", defaultRows, "number of rows generated at startup")
	width := fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", false, "show the key help row")
	refresh := fs.Bool("refresh", false, "start with random price refresh enabled")
	trace := fs.Bool("trace", false, "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", false, "print success messages for actions")
	logFile := fs.String("log-file", "", "path to the log file")
	pageSize := fs.Int("page-size", 0, "rows appended per page (0 uses 200)")
	maxRows := fs.Int("max-rows", 0, "row count that ends paging (0 uses 6000)")
	fetchDelay := fs.Duration("fetch-delay", defaultFetchDelay, "simulated latency of a page fetch")
	fetchGap := fs.Duration("fetch-interval", defaultFetchGap, "minimum time between page fetch starts")
	failRate := fs.Float64("fail-rate", 0, "probability in [0,1] that a page fetch fails")
	seed := fs.Uint64("seed", 0, "random seed for generated data (0 picks one)")
	fixedCols := fs.Bool("fixed-cols", false, "pin the leading columns while scrolling")
	printOnly := fs.Bool("print", false, "print the initial table and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	path := pick(fs.Changed("config"), *configPath, envString(env, envConfig), nil, "")
	file, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}

	caps := table.DefaultCapabilities()
	if file.Capabilities != nil {
		caps = *file.Capabilities
	}
	paging := table.Paging{}
	if file.Paging != nil {
		paging = *file.Paging
	}
	fileDelay, err := parseFileDuration("fetch_delay", file.FetchDelay)
	if err != nil {
		return Config{}, err
	}
	fileGap, err := parseFileDuration("fetch_interval", file.FetchGap)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Rows:       pick(fs.Changed("rows"), *rows, envInt(env, envRows), file.Rows, defaultRows),
			Width:      pick(fs.Changed("width"), *width, envInt(env, envWidth), file.Width, 0),
			Height:     pick(fs.Changed("height"), *height, envInt(env, envHeight), file.Height, 0),
			ShowFooter: pick(fs.Changed("footer"), *footer, envBool(env, envShowFooter), file.Footer, false),
			Refresh:    pick(fs.Changed("refresh"), *refresh, envBool(env, envRefresh), file.Refresh, false),
			Verbose:    pick(fs.Changed("verbose"), *verbose, envBool(env, envVerbose), file.Verbose, false),
			Print:      pick(fs.Changed("print"), *printOnly, envBool(env, envPrint), nil, false),
			FetchDelay: pick(fs.Changed("fetch-delay"), *fetchDelay, envDuration(env, envFetchDelay), fileDelay, defaultFetchDelay),
			FetchGap:   pick(fs.Changed("fetch-interval"), *fetchGap, envDuration(env, envFetchGap), fileGap, defaultFetchGap),
			FailRate:   pick(fs.Changed("fail-rate"), *failRate, envFloat(env, envFailRate), file.FailRate, 0),
			Seed:       pick(fs.Changed("seed"), *seed, envUint(env, envSeed), file.Seed, 0),
		},
		Logging: Logging{
			FilePath: pick(fs.Changed("log-file"), *logFile, envString(env, envLogFile), nil, ""),
			Trace:    pick(fs.Changed("trace"), *trace, envBool(env, envTrace), nil, false),
		},
		File: path,
		Args: append([]string(nil), args...),
	}
	caps.FixedColumns = pick(fs.Changed("fixed-cols"), *fixedCols, envBool(env, envFixedCols), nil, caps.FixedColumns)
	paging.PageSize = pick(fs.Changed("page-size"), *pageSize, envInt(env, envPageSize), nil, paging.PageSize)
	paging.MaxRows = pick(fs.Changed("max-rows"), *maxRows, envInt(env, envMaxRows), nil, paging.MaxRows)
	defaults := table.DefaultPaging()
	if paging.PageSize == 0 {
		paging.PageSize = defaults.PageSize
	}
	if paging.MaxRows == 0 {
		paging.MaxRows = defaults.MaxRows
	}
	if paging.Threshold == 0 {
		paging.Threshold = defaults.Threshold
	}
	cfg.App.Capabilities = caps
	cfg.App.Paging = paging

	cfg.Flags = map[string]string{
		"config":     path,
		"rows":       strconv.Itoa(cfg.App.Rows),
		"width":      strconv.Itoa(cfg.App.Width),
		"height":     strconv.Itoa(cfg.App.Height),
		"footer":     strconv.FormatBool(cfg.App.ShowFooter),
		"refresh":    strconv.FormatBool(cfg.App.Refresh),
		"trace":      strconv.FormatBool(cfg.Logging.Trace),
		"verbose":    strconv.FormatBool(cfg.App.Verbose),
		"logFile":    cfg.Logging.FilePath,
		"pageSize":   strconv.Itoa(paging.PageSize),
		"maxRows":    strconv.Itoa(paging.MaxRows),
		"fetchDelay": cfg.App.FetchDelay.String(),
		"fetchGap":   cfg.App.FetchGap.String(),
		"failRate":   strconv.FormatFloat(cfg.App.FailRate, 'f', -1, 64),
		"seed":       strconv.FormatUint(cfg.App.Seed, 10),
		"fixedCols":  strconv.FormatBool(caps.FixedColumns),
		"print":      strconv.FormatBool(cfg.App.Print),
	}

	return cfg, nil
}

// pick resolves one option: an explicit flag wins, then the environment,
// then the file, then the fallback.
func pick[T any](changed bool, flagValue T, envValue, fileValue *T, fallback T) T {
	switch {
	case changed:
		return flagValue
	case envValue != nil:
		return *envValue
	case fileValue != nil:
		return *fileValue
	default:
		return fallback
	}
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if strings.TrimSpace(path) == "" {
		return fc, nil
	}
	// Keys missing from a capabilities block keep their defaults.
	caps := table.DefaultCapabilities()
	fc.Capabilities = &caps
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.Capabilities == nil {
		fc.Capabilities = &caps
	}
	return fc, nil
}

func parseFileDuration(key string, value *string) (*time.Duration, error) {
	if value == nil {
		return nil, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*value))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &d, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		values[key] = value
	}
	return values
}

// envParsed returns nil when key is unset, blank, or fails to parse.
func envParsed[T any](env map[string]string, key string, parse func(string) (T, error)) *T {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	parsed, err := parse(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &parsed
}

func envString(env map[string]string, key string) *string {
	v, ok := env[key]
	if !ok {
		return nil
	}
	return &v
}

func envInt(env map[string]string, key string) *int {
	return envParsed(env, key, strconv.Atoi)
}

func envBool(env map[string]string, key string) *bool {
	return envParsed(env, key, strconv.ParseBool)
}

func envDuration(env map[string]string, key string) *time.Duration {
	return envParsed(env, key, time.ParseDuration)
}

func envFloat(env map[string]string, key string) *float64 {
	return envParsed(env, key, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func envUint(env map[string]string, key string) *uint64 {
	return envParsed(env, key, func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) })
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects option combinations the table cannot honour.
func Validate(cfg Config) error {
	a := cfg.App
	if a.Rows < 0 {
		return fmt.Errorf("rows must be >= 0 (got %d)", a.Rows)
	}
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.Paging.PageSize <= 0 {
		return fmt.Errorf("page-size must be > 0 (got %d)", a.Paging.PageSize)
	}
	if a.Paging.MaxRows < a.Rows {
		return fmt.Errorf("max-rows must be >= rows (got %d < %d)", a.Paging.MaxRows, a.Rows)
	}
	if a.FailRate < 0 || a.FailRate > 1 {
		return fmt.Errorf("fail-rate must be within [0,1] (got %g)", a.FailRate)
	}
	if a.FetchDelay < 0 {
		return fmt.Errorf("fetch-delay must be >= 0 (got %s)", a.FetchDelay)
	}
	if a.FetchGap < 0 {
		return fmt.Errorf("fetch-interval must be >= 0 (got %s)", a.FetchGap)
	}
	return nil
}
