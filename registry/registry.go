// Package registry provides a callback registry that validates handler
// signatures before accepting them. Each event declares the shape its
// handlers must have; registering a handler with the wrong shape fails
// instead of blowing up at dispatch time.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gnoverse/sigmatch"
	"go.uber.org/zap"
)

// Registry stores event handlers keyed by event name.
type Registry struct {
	mu       sync.RWMutex
	logger   *zap.Logger
	expected map[string]*sigmatch.Matcher
	handlers map[string][]any
}

// New creates an empty registry. A nil logger disables logging.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		logger:   logger,
		expected: make(map[string]*sigmatch.Matcher),
		handlers: make(map[string][]any),
	}
}

// Expect declares the shape handlers for the given event must have.
// Re-declaring an event replaces its shape; handlers already registered
// under the old shape stay registered.
func (r *Registry) Expect(event string, tokens ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expected[event] = sigmatch.New(tokens...)
}

// Register validates the handler against the event's declared shape and
// stores it. Events without a declared shape reject every handler.
func (r *Registry) Register(event string, handler any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.expected[event]
	if !ok {
		return fmt.Errorf("no shape declared for event %q", event)
	}
	if err := m.Check(handler); err != nil {
		r.logger.Warn("Rejecting handler",
			zap.String("event", event),
			zap.Error(err))
		return fmt.Errorf("handler for event %q: %w", event, err)
	}

	r.handlers[event] = append(r.handlers[event], handler)
	r.logger.Debug("Handler registered",
		zap.String("event", event),
		zap.Int("count", len(r.handlers[event])))
	return nil
}

// MustRegister is Register for wiring done at program start; it panics
// on a rejected handler.
func (r *Registry) MustRegister(event string, handler any) {
	if err := r.Register(event, handler); err != nil {
		panic(err)
	}
}

// Handlers returns a copy of the handlers registered for the event, in
// registration order.
func (r *Registry) Handlers(event string) []any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hs := r.handlers[event]
	out := make([]any, len(hs))
	copy(out, hs)
	return out
}

// Events returns the sorted names of events with a declared shape.
func (r *Registry) Events() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]string, 0, len(r.expected))
	for event := range r.expected {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}
