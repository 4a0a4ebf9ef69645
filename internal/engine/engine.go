package engine

import (
	"context"
	"log/slog"

	"github.com/roach88/rotorgraph/internal/ids"
	"github.com/roach88/rotorgraph/internal/mechanics"
	"github.com/roach88/rotorgraph/internal/metrics"
	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/store"
)

// Ticker is called on every key press that does not rescramble the
// machine. It is the extension point for per-keystroke stepping; entropy
// is the previous output letter of the stream.
type Ticker interface {
	Tick(ctx context.Context, m model.Machine, channel, keyPress int, entropy string) error
}

// NopTicker logs the key press and leaves the machine unchanged.
type NopTicker struct{}

// Tick implements Ticker.
func (NopTicker) Tick(_ context.Context, m model.Machine, channel, keyPress int, entropy string) error {
	slog.Debug("tick", "machine", m.ID, "channel", channel, "key_press", keyPress, "entropy", entropy)
	return nil
}

// Engine drives machines stored in a Store.
type Engine struct {
	store   *store.Store
	cache   *mechanics.Cache
	ids     ids.Generator
	metrics *metrics.Metrics
	ticker  Ticker
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator sets the generator for new record ids.
// Default: ids.UUIDv7Generator.
func WithIDGenerator(g ids.Generator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// WithMetrics records engine activity on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTicker replaces the per-keystroke hook. Default: NopTicker.
func WithTicker(t Ticker) Option {
	return func(e *Engine) {
		e.ticker = t
	}
}

// WithCache shares a mechanics cache between engines.
func WithCache(c *mechanics.Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// New creates an Engine over s.
func New(s *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  s,
		cache:  mechanics.NewCache(),
		ids:    ids.UUIDv7Generator{},
		ticker: NopTicker{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the engine's store.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Cache returns the engine's mechanics cache.
func (e *Engine) Cache() *mechanics.Cache {
	return e.cache
}

// NewID mints a record id.
func (e *Engine) NewID() string {
	return e.ids.Generate()
}
