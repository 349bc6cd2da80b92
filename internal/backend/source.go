package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/stock-table/internal/stock"
)

// ErrFetchFailed is returned by SimulatedSource when failure injection fires.
var ErrFetchFailed = errors.New("page fetch failed")

// PageSource produces pages of rows. Implementations may block and must
// honour ctx cancellation.
type PageSource interface {
	FetchPage(ctx context.Context, start, size int) ([]stock.Stock, error)
}

// SourceConfig tunes SimulatedSource.
type SourceConfig struct {
	Delay       time.Duration
	MinInterval time.Duration
	FailRate    float64
}

// SimulatedSource stands in for a remote service: it waits Delay, then
// fabricates rows, failing at random with probability FailRate.
type SimulatedSource struct {
	gen      *stock.Generator
	cfg      SourceConfig
	throttle *throttle
}

// NewSimulatedSource builds a source backed by gen.
func NewSimulatedSource(gen *stock.Generator, cfg SourceConfig) *SimulatedSource {
	if gen == nil {
		gen = stock.NewGenerator(0)
	}
	return &SimulatedSource{gen: gen, cfg: cfg, throttle: newThrottle(cfg.MinInterval)}
}

// FetchPage returns size rows with ids starting at start.
func (s *SimulatedSource) FetchPage(ctx context.Context, start, size int) ([]stock.Stock, error) {
	if err := s.throttle.wait(ctx); err != nil {
		return nil, err
	}
	if s.cfg.Delay > 0 {
		timer := time.NewTimer(s.cfg.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if s.gen.Chance(s.cfg.FailRate) {
		return nil, fmt.Errorf("rows %d-%d: %w", start, start+size-1, ErrFetchFailed)
	}
	return s.gen.Rows(start, size), nil
}
