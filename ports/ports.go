// Package ports defines interfaces (contracts) between the module and its
// host. Implementations of the host side live in adapters/.
package ports

import (
	"context"
	"reflect"
	"time"

	"github.com/fakester/radcomponents/core/lifecycle"
	"github.com/fakester/radcomponents/domain/component"
	"github.com/fakester/radcomponents/domain/license"
	"github.com/go-chi/chi/v5"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Component Registry Ports (host-owned)
// -----------------------------------------------------------------------------

// ComponentRegistry is the host's process-wide component store. The module
// only registers into it and removes from it.
type ComponentRegistry interface {
	// RegisterComponent inserts d, replacing any entry with the same id.
	RegisterComponent(ctx context.Context, d component.Descriptor) error

	// RemoveComponent removes the entry for id. Absent ids are not an error.
	RemoveComponent(ctx context.Context, id string) error
}

// ComponentLookup is the read side of a registry, used by the host.
type ComponentLookup interface {
	// Component returns the record registered under id.
	Component(ctx context.Context, id string) (component.Record, bool, error)

	// Components returns all registered records sorted by id.
	Components(ctx context.Context) ([]component.Record, error)
}

// -----------------------------------------------------------------------------
// Host Context Ports
// -----------------------------------------------------------------------------

// RenderingContext is the UI-rendering subsystem's handle within a process.
type RenderingContext interface {
	// ComponentRegistry returns the registry, or nil while the subsystem has
	// not exposed one yet. Implementations should return an untyped nil;
	// RegistryOf also treats a nil pointer inside the interface as absent.
	ComponentRegistry() ComponentRegistry
}

// DesignerContext is the host context handed to the designer hook.
type DesignerContext interface {
	Rendering() (RenderingContext, bool)
}

// GatewayContext is the host context handed to the gateway hook.
type GatewayContext interface {
	Rendering() (RenderingContext, bool)
}

// RegistryOf walks a host context to its component registry. It returns
// nil when the context, its rendering subsystem or the registry is missing,
// including a nil pointer wrapped in one of the interfaces.
func RegistryOf(ctx interface {
	Rendering() (RenderingContext, bool)
}) ComponentRegistry {
	if isNil(ctx) {
		return nil
	}
	r, ok := ctx.Rendering()
	if !ok || isNil(r) {
		return nil
	}
	reg := r.ComponentRegistry()
	if isNil(reg) {
		return nil
	}
	return reg
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// LicenseSource provides the current license state.
type LicenseSource interface {
	LicenseState() license.State
}

// -----------------------------------------------------------------------------
// Module Hook Ports (implemented by app/)
// -----------------------------------------------------------------------------

// DesignerModuleHook is the designer process entry point.
type DesignerModuleHook interface {
	Startup(ctx context.Context, dctx DesignerContext, state license.State) (lifecycle.Result, error)
	Shutdown(ctx context.Context) (lifecycle.Result, error)
}

// GatewayModuleHook is the gateway process entry point.
type GatewayModuleHook interface {
	Setup(gctx GatewayContext)
	Startup(ctx context.Context, state license.State) (lifecycle.Result, error)
	Shutdown(ctx context.Context) (lifecycle.Result, error)

	MountedResourceFolder() (string, bool)
	MountPathAlias() (string, bool)
	IsMakerEditionCompatible() bool
	IsFreeModule() bool
	MountRouteHandlers(r chi.Router)
}
