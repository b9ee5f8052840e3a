// Package app contains the designer and gateway module hooks.
//
// Both hooks share one lifecycle: register every catalog descriptor into the
// host registry on startup and remove exactly those ids on shutdown. A
// missing registry never fails startup; the hook keeps running with nothing
// registered and says so in its Result and its log.
package app

import (
	"context"

	"github.com/fakester/radcomponents/adapters/clock"
	"github.com/fakester/radcomponents/adapters/idgen"
	"github.com/fakester/radcomponents/components"
	"github.com/fakester/radcomponents/core/events"
	"github.com/fakester/radcomponents/core/lifecycle"
	"github.com/fakester/radcomponents/domain/component"
	"github.com/fakester/radcomponents/domain/license"
	"github.com/fakester/radcomponents/ports"
	"github.com/rs/zerolog"
)

// Process kinds.
const (
	ProcessDesigner = "designer"
	ProcessGateway  = "gateway"
)

// Deps are the collaborators shared by both hooks. Zero values are
// replaced with working defaults.
type Deps struct {
	Logger zerolog.Logger
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Events events.Publisher
}

// hook is the lifecycle shared by DesignerHook and GatewayHook.
type hook struct {
	process     string
	instance    string
	descriptors []component.Descriptor

	logger    zerolog.Logger
	clock     ports.Clock
	events    events.Publisher
	machine   lifecycle.Machine
	registrar *lifecycle.Registrar
}

func newHook(process string, catalog *components.Catalog, deps Deps) *hook {
	ids := deps.IDGen
	if ids == nil {
		ids = idgen.UUID{}
	}
	pub := deps.Events
	if pub == nil {
		pub = events.Nop{}
	}

	instance := ids.New()
	logger := deps.Logger.With().
		Str("process", process).
		Str("instance", instance).
		Logger()

	var descriptors []component.Descriptor
	if catalog != nil {
		descriptors = catalog.All()
	}

	logger.Info().
		Int("components", len(descriptors)).
		Msg("module hook created")

	return &hook{
		process:     process,
		instance:    instance,
		descriptors: descriptors,
		logger:      logger,
		clock:       clock.Or(deps.Clock),
		events:      pub,
		registrar:   lifecycle.NewRegistrar(logger),
	}
}

func (h *hook) start(ctx context.Context, reg ports.ComponentRegistry, state license.State) (lifecycle.Result, error) {
	if err := h.machine.Transition(lifecycle.Started); err != nil {
		return lifecycle.Result{Outcome: lifecycle.OutcomeNoop, Reason: err, At: h.clock.Now()}, err
	}

	h.logger.Info().
		Bool("activated", state.Activated).
		Bool("trial_expired", state.TrialExpired).
		Bool("usable", license.Usable(state)).
		Msg("module starting")

	res := h.registrar.Register(ctx, reg, h.descriptors)
	res.At = h.clock.Now()

	for _, id := range res.IDs {
		h.publish(ctx, events.ComponentRegistered, id, nil)
	}

	if res.Degraded() {
		h.publish(ctx, events.HookDegraded, "", res.Reason)
		h.logger.Warn().
			Err(res.Reason).
			Strs("registered", res.IDs).
			Msg("module started degraded")
		return res, nil
	}

	h.publish(ctx, events.HookStarted, "", nil)
	h.logger.Info().
		Strs("registered", res.IDs).
		Msg("module started")
	return res, nil
}

func (h *hook) stop(ctx context.Context) (lifecycle.Result, error) {
	if h.machine.State() == lifecycle.Stopped {
		h.logger.Debug().Msg("module already stopped")
		return lifecycle.Result{Outcome: lifecycle.OutcomeNoop, At: h.clock.Now()}, nil
	}

	h.logger.Info().Msg("module shutting down")

	res := h.registrar.Remove(ctx)
	res.At = h.clock.Now()

	if err := h.machine.Transition(lifecycle.Stopped); err != nil {
		return res, err
	}

	for _, id := range res.IDs {
		h.publish(ctx, events.ComponentRemoved, id, nil)
	}
	h.publish(ctx, events.HookStopped, "", res.Reason)

	h.logger.Info().
		Str("outcome", res.Outcome.String()).
		Strs("removed", res.IDs).
		Msg("module shut down")
	return res, nil
}

func (h *hook) publish(ctx context.Context, name, componentID string, reason error) {
	h.events.Publish(ctx, events.Event{
		Name:      name,
		Process:   h.process,
		Instance:  h.instance,
		Component: componentID,
		Reason:    reason,
	})
}
