package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/stock-table/internal/stock"
)

// Kind represents the type of data emitted by the backend.
type Kind int

const (
	KindRefresh Kind = iota
)

// Event conveys a tick or an error from a backend goroutine.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// RefreshTick asks the owner to re-price every Stride-th row.
type RefreshTick struct {
	Stride int
}

// RefreshConfig bounds the random tick interval and stride. Intervals and
// strides are drawn from half-open ranges [Min, Max).
type RefreshConfig struct {
	MinInterval time.Duration
	MaxInterval time.Duration
	MinStride   int
	MaxStride   int
}

// DefaultRefreshConfig ticks every 80-150ms and touches roughly one row in
// three to ten.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		MinInterval: 80 * time.Millisecond,
		MaxInterval: 150 * time.Millisecond,
		MinStride:   3,
		MaxStride:   10,
	}
}

// RefreshTicker publishes refresh ticks at random intervals. It never touches
// row data itself; the receiver applies each tick on its own goroutine.
type RefreshTicker struct {
	gen *stock.Generator
	cfg RefreshConfig

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewRefreshTicker starts a ticker that stops when parent is done or Stop is
// called.
func NewRefreshTicker(parent context.Context, gen *stock.Generator, cfg RefreshConfig) *RefreshTicker {
	if parent == nil {
		parent = context.Background()
	}
	if gen == nil {
		gen = stock.NewGenerator(0)
	}
	defaults := DefaultRefreshConfig()
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = defaults.MinInterval
	}
	if cfg.MaxInterval < cfg.MinInterval {
		cfg.MaxInterval = cfg.MinInterval
	}
	if cfg.MinStride <= 0 {
		cfg.MinStride = defaults.MinStride
	}
	if cfg.MaxStride < cfg.MinStride {
		cfg.MaxStride = cfg.MinStride
	}
	ctx, cancel := context.WithCancel(parent)
	t := &RefreshTicker{
		gen:    gen,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 1),
	}

	t.wg.Add(1)
	go t.run()

	go func() {
		t.wg.Wait()
		close(t.events)
	}()

	return t
}

// Events returns the tick channel. It is closed once the ticker exits.
func (t *RefreshTicker) Events() <-chan Event {
	return t.events
}

// Stop cancels the ticker. A tick that has not been received yet is dropped.
func (t *RefreshTicker) Stop() {
	t.cancel()
}

// Wait blocks until the ticker goroutine has exited and Events is closed.
func (t *RefreshTicker) Wait() {
	t.wg.Wait()
}

func (t *RefreshTicker) nextDelay() time.Duration {
	lo, hi := int(t.cfg.MinInterval/time.Millisecond), int(t.cfg.MaxInterval/time.Millisecond)
	if hi <= lo {
		return t.cfg.MinInterval
	}
	return time.Duration(t.gen.IntRange(lo, hi)) * time.Millisecond
}

func (t *RefreshTicker) run() {
	defer t.wg.Done()
	for {
		timer := time.NewTimer(t.nextDelay())
		select {
		case <-t.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		evt := Event{
			Kind: KindRefresh,
			Data: RefreshTick{Stride: t.gen.IntRange(t.cfg.MinStride, t.cfg.MaxStride)},
		}
		select {
		case <-t.ctx.Done():
			return
		case t.events <- evt:
		}
	}
}
