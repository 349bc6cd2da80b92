package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/stock-table/internal/app"
	"github.com/atomicstack/stock-table/internal/config"
	"github.com/atomicstack/stock-table/internal/logging"
	"github.com/atomicstack/stock-table/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	tty := collectTTYDetails()
	if logging.TraceEnabled() {
		events.App.Start(startupTracePayload(cfg, tty))
	}

	if err := start(cfg, tty, os.Stdout); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v (details in %s)\n", err, logging.Path())
		os.Exit(1)
	}
}

// start runs the grid, or prints a snapshot when asked to or when stdout is
// not a terminal.
func start(cfg config.Config, tty ttyDetails, out io.Writer) error {
	if cfg.App.Print || !tty.stdoutIsTerminal() {
		return app.Print(out, cfg.App)
	}
	return app.Run(cfg.App)
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"tty":    tty,
		"log":    logging.Path(),
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (d ttyDetails) stdoutIsTerminal() bool {
	for _, p := range d.Probes {
		if p.Name == "stdout" {
			return p.IsTerminal
		}
	}
	return false
}

// collectTTYDetails probes the standard descriptors for a terminal and its size.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	details := ttyDetails{Probes: make([]ttyProbeResult, 0, len(probes))}
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.file.Fd())
		if term.IsTerminal(fd) {
			entry.IsTerminal = true
			width, height, err := term.GetSize(fd)
			switch {
			case err != nil:
				entry.Error = err.Error()
			case details.Detected == nil:
				details.Detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				fallthrough
			default:
				entry.Width, entry.Height = width, height
			}
		}
		details.Probes = append(details.Probes, entry)
	}
	return details
}
