package app

import (
	"context"
	"sync"

	"github.com/fakester/radcomponents/components"
	"github.com/fakester/radcomponents/core/lifecycle"
	"github.com/fakester/radcomponents/domain/license"
	"github.com/fakester/radcomponents/ports"
	"github.com/go-chi/chi/v5"
)

// RouteMounter installs the module's HTTP routes on a router.
type RouteMounter func(r chi.Router)

// GatewayHook registers the module's components with the gateway's
// rendering subsystem and exposes the module's web surface.
type GatewayHook struct {
	*hook

	routes RouteMounter

	mu   sync.RWMutex
	gctx ports.GatewayContext
	last lifecycle.Result
}

// NewGatewayHook creates the gateway hook for catalog. routes is called
// from MountRouteHandlers and may be nil.
func NewGatewayHook(catalog *components.Catalog, routes RouteMounter, deps Deps) *GatewayHook {
	return &GatewayHook{
		hook:   newHook(ProcessGateway, catalog, deps),
		routes: routes,
	}
}

// Setup stores the gateway context for Startup. It does nothing else.
func (h *GatewayHook) Setup(gctx ports.GatewayContext) {
	h.mu.Lock()
	h.gctx = gctx
	h.mu.Unlock()
	h.logger.Debug().Bool("context", gctx != nil).Msg("gateway context set")
}

// Startup registers every descriptor with the registry reachable from the
// context given to Setup. Without Setup, or with no registry exposed, the
// hook starts degraded with nothing registered.
func (h *GatewayHook) Startup(ctx context.Context, state license.State) (lifecycle.Result, error) {
	h.mu.RLock()
	gctx := h.gctx
	h.mu.RUnlock()

	res, err := h.start(ctx, ports.RegistryOf(gctx), state)
	if err == nil {
		h.mu.Lock()
		h.last = res
		h.mu.Unlock()
	}
	return res, err
}

// Shutdown removes every id registered by Startup. It is safe to call at
// any point, including before Startup and more than once.
func (h *GatewayHook) Shutdown(ctx context.Context) (lifecycle.Result, error) {
	return h.stop(ctx)
}

// MountedResourceFolder names the bundled folder served under the alias.
func (h *GatewayHook) MountedResourceFolder() (string, bool) {
	return components.MountedFolder, true
}

// MountPathAlias is the short URL alias for the module's resources.
func (h *GatewayHook) MountPathAlias() (string, bool) {
	return components.URLAlias, true
}

func (h *GatewayHook) IsMakerEditionCompatible() bool { return true }

func (h *GatewayHook) IsFreeModule() bool { return true }

// MountRouteHandlers installs the module's routes on r.
func (h *GatewayHook) MountRouteHandlers(r chi.Router) {
	if h.routes == nil {
		h.logger.Warn().Msg("no module routes configured")
		return
	}
	h.routes(r)
}

// State returns the current lifecycle state.
func (h *GatewayHook) State() lifecycle.State { return h.machine.State() }

// InstanceID returns the id assigned to this hook.
func (h *GatewayHook) InstanceID() string { return h.instance }

// Registered returns the ids currently registered by this hook.
func (h *GatewayHook) Registered() []string { return h.registrar.Registered() }

// Ready reports whether the hook is started and its startup was not
// degraded.
func (h *GatewayHook) Ready() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.machine.State() == lifecycle.Started && !h.last.Degraded()
}

// Ensure interface compliance.
var _ ports.GatewayModuleHook = (*GatewayHook)(nil)
