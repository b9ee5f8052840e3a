// Package events provides a small publish/subscribe bus for module
// lifecycle events. Hooks publish; metrics and logging subscribe.
package events

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Lifecycle event names.
const (
	ComponentRegistered = "component.registered"
	ComponentRemoved    = "component.removed"
	HookStarted         = "hook.started"
	HookDegraded        = "hook.degraded"
	HookStopped         = "hook.stopped"
)

// Event represents a published event.
type Event struct {
	// Name is the event name (e.g., "component.registered", "hook.started").
	Name string

	// Process is the process kind that emitted the event ("designer" or "gateway").
	Process string

	// Instance is the id of the hook instance.
	Instance string

	// Component is the component id, for component.* events.
	Component string

	// Reason carries the cause of a degraded step.
	Reason error
}

// Handler is a function that processes an event.
type Handler func(ctx context.Context, event Event) error

// Publisher emits events.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Bus is a simple publish/subscribe event bus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   zerolog.Logger
}

// NewBus creates a new event bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event.
// Supports wildcard subscriptions:
//   - "component.registered" - exact match
//   - "component.*" - all component events
//   - "*" - all events
func (b *Bus) Subscribe(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Publish emits an event to all matching handlers.
// Handlers are called synchronously in registration order; a failing
// handler is logged and does not stop the others.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	matched := b.match(event.Name)
	b.mu.RUnlock()

	b.logger.Debug().
		Str("event", event.Name).
		Str("process", event.Process).
		Str("component", event.Component).
		Msg("event emitted")

	for _, handler := range matched {
		if err := handler(ctx, event); err != nil {
			b.logger.Error().
				Err(err).
				Str("event", event.Name).
				Msg("event handler error")
		}
	}
}

// HasSubscribers checks if any handlers are registered for an event.
func (b *Bus) HasSubscribers(event string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.match(event)) > 0
}

// match collects handlers for name. Caller holds the read lock.
func (b *Bus) match(name string) []Handler {
	var matched []Handler

	matched = append(matched, b.handlers[name]...)

	if prefix, _, ok := strings.Cut(name, "."); ok && prefix != "" {
		matched = append(matched, b.handlers[prefix+".*"]...)
	}

	matched = append(matched, b.handlers["*"]...)
	return matched
}

// Nop is a Publisher that drops every event.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, Event) {}
