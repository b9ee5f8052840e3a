package app

import (
	"context"

	"github.com/fakester/radcomponents/components"
	"github.com/fakester/radcomponents/core/lifecycle"
	"github.com/fakester/radcomponents/domain/license"
	"github.com/fakester/radcomponents/ports"
)

// DesignerHook registers the module's components with the designer's
// rendering subsystem.
type DesignerHook struct {
	*hook
}

// NewDesignerHook creates the designer hook for catalog.
func NewDesignerHook(catalog *components.Catalog, deps Deps) *DesignerHook {
	return &DesignerHook{hook: newHook(ProcessDesigner, catalog, deps)}
}

// Startup registers every descriptor with the registry reachable from dctx.
// A missing rendering subsystem or registry yields a degraded Result; the
// error is reserved for a hook that was already started or stopped.
func (h *DesignerHook) Startup(ctx context.Context, dctx ports.DesignerContext, state license.State) (lifecycle.Result, error) {
	return h.start(ctx, ports.RegistryOf(dctx), state)
}

// Shutdown removes every id registered by Startup. It is safe to call at
// any point, including before Startup and more than once.
func (h *DesignerHook) Shutdown(ctx context.Context) (lifecycle.Result, error) {
	return h.stop(ctx)
}

// State returns the current lifecycle state.
func (h *DesignerHook) State() lifecycle.State { return h.machine.State() }

// InstanceID returns the id assigned to this hook.
func (h *DesignerHook) InstanceID() string { return h.instance }

// Registered returns the ids currently registered by this hook.
func (h *DesignerHook) Registered() []string { return h.registrar.Registered() }

// Ensure interface compliance.
var _ ports.DesignerModuleHook = (*DesignerHook)(nil)
