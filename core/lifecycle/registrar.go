package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/fakester/radcomponents/domain/component"
	"github.com/rs/zerolog"
)

// Registry is the part of the host registry the registrar drives. Any
// ports.ComponentRegistry satisfies it.
type Registry interface {
	RegisterComponent(ctx context.Context, d component.Descriptor) error
	RemoveComponent(ctx context.Context, id string) error
}

// Registrar registers descriptors and later removes exactly the ids it
// registered. The registry handle is optional: both hooks share the same
// guard, so a handle that was never obtained degrades startup and turns
// shutdown into a logged no-op.
type Registrar struct {
	logger zerolog.Logger

	mu         sync.Mutex
	registry   Registry
	registered []string
}

// NewRegistrar creates a registrar.
func NewRegistrar(logger zerolog.Logger) *Registrar {
	return &Registrar{logger: logger}
}

// Register stores reg as the registry handle and registers every
// descriptor. A nil reg is a degraded startup with nothing registered.
// Individual failures are logged and do not stop the remaining
// registrations.
func (r *Registrar) Register(ctx context.Context, reg Registry, descriptors []component.Descriptor) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reg == nil {
		r.logger.Error().
			Int("components", len(descriptors)).
			Msg("component registry not found, components will not be available")
		return Result{Outcome: OutcomeDegraded, Reason: ErrRegistryUnavailable}
	}
	r.registry = reg

	var errs []error
	var ids []string
	for _, d := range descriptors {
		if err := reg.RegisterComponent(ctx, d); err != nil {
			r.logger.Error().Err(err).Str("component", d.ID()).Msg("failed to register component")
			errs = append(errs, fmt.Errorf("register %s: %w", d.ID(), err))
			continue
		}
		if !slices.Contains(r.registered, d.ID()) {
			r.registered = append(r.registered, d.ID())
		}
		ids = append(ids, d.ID())
		r.logger.Debug().Str("component", d.ID()).Msg("component registered")
	}

	if len(errs) > 0 {
		return Result{Outcome: OutcomeDegraded, IDs: ids, Reason: errors.Join(errs...)}
	}
	return Result{Outcome: OutcomeOK, IDs: ids}
}

// Remove removes every id this registrar registered, best-effort, and then
// releases the registry handle.
func (r *Registrar) Remove(ctx context.Context) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registry == nil {
		r.logger.Warn().Msg("component registry was never obtained, nothing to unregister")
		return Result{Outcome: OutcomeNoop, Reason: ErrRegistryUnavailable}
	}

	var errs []error
	var ids []string
	for i := len(r.registered) - 1; i >= 0; i-- {
		id := r.registered[i]
		if err := r.registry.RemoveComponent(ctx, id); err != nil {
			r.logger.Error().Err(err).Str("component", id).Msg("failed to remove component")
			errs = append(errs, fmt.Errorf("remove %s: %w", id, err))
			continue
		}
		ids = append(ids, id)
		r.logger.Debug().Str("component", id).Msg("component removed")
	}

	r.registry = nil
	r.registered = nil

	if len(errs) > 0 {
		return Result{Outcome: OutcomeDegraded, IDs: ids, Reason: errors.Join(errs...)}
	}
	if len(ids) == 0 {
		return Result{Outcome: OutcomeNoop}
	}
	return Result{Outcome: OutcomeOK, IDs: ids}
}

// Registered returns the ids currently tracked.
func (r *Registrar) Registered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.registered)
}

// HasRegistry reports whether a registry handle is held.
func (r *Registrar) HasRegistry() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registry != nil
}
