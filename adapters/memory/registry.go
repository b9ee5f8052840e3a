// Package memory provides in-memory implementations of the host-side
// ports, used by tests and by the reference host when no persistent
// registry is configured.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/fakester/radcomponents/domain/component"
	"github.com/fakester/radcomponents/ports"
)

// ErrInvalidDescriptor is returned when a zero descriptor is registered.
var ErrInvalidDescriptor = errors.New("invalid descriptor")

// Registry is an in-memory implementation of ports.ComponentRegistry and
// ports.ComponentLookup.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]component.Descriptor // by ID
}

// NewRegistry creates a new in-memory component registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]component.Descriptor),
	}
}

// RegisterComponent inserts d, replacing any entry with the same id.
func (r *Registry) RegisterComponent(ctx context.Context, d component.Descriptor) error {
	if d.IsZero() {
		return ErrInvalidDescriptor
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[d.ID()] = d
	return nil
}

// RemoveComponent deletes the entry for id. Unknown ids are ignored.
func (r *Registry) RemoveComponent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

// Descriptor returns the descriptor registered under id.
func (r *Registry) Descriptor(id string) (component.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[id]
	return d, ok
}

// Component returns the record registered under id.
func (r *Registry) Component(ctx context.Context, id string) (component.Record, bool, error) {
	d, ok := r.Descriptor(id)
	if !ok {
		return component.Record{}, false, nil
	}
	return d.Record(), true, nil
}

// Components returns all registered records sorted by id.
func (r *Registry) Components(ctx context.Context) ([]component.Record, error) {
	r.mu.RLock()
	result := make([]component.Record, 0, len(r.entries))
	for _, d := range r.entries {
		result = append(result, d.Record())
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Ensure interface compliance.
var (
	_ ports.ComponentRegistry = (*Registry)(nil)
	_ ports.ComponentLookup   = (*Registry)(nil)
)
