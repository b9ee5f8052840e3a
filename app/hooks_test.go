package app_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fakester/radcomponents/adapters/clock"
	"github.com/fakester/radcomponents/adapters/host"
	"github.com/fakester/radcomponents/adapters/idgen"
	"github.com/fakester/radcomponents/adapters/memory"
	"github.com/fakester/radcomponents/app"
	"github.com/fakester/radcomponents/components"
	"github.com/fakester/radcomponents/core/events"
	"github.com/fakester/radcomponents/core/lifecycle"
	"github.com/fakester/radcomponents/domain/license"
	"github.com/fakester/radcomponents/resources"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

var startedAt = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

func loadCatalog(t *testing.T) *components.Catalog {
	t.Helper()
	catalog, err := components.Load(resources.FS())
	if err != nil {
		t.Fatalf("components.Load() error = %v", err)
	}
	return catalog
}

func testDeps(buf *bytes.Buffer, prefix string) app.Deps {
	logger := zerolog.Nop()
	if buf != nil {
		logger = zerolog.New(buf)
	}
	return app.Deps{
		Logger: logger,
		Clock:  clock.NewFrozen(startedAt),
		IDGen:  idgen.NewPrefixed(prefix),
	}
}

// -----------------------------------------------------------------------------
// Designer
// -----------------------------------------------------------------------------

func TestDesignerHook_StartupAndShutdown(t *testing.T) {
	ctx := context.Background()
	catalog := loadCatalog(t)
	reg := memory.NewRegistry()
	h := app.NewDesignerHook(catalog, testDeps(nil, "designer"))

	res, err := h.Startup(ctx, host.New(reg), license.Default())
	if err != nil {
		t.Fatalf("Startup() error = %v", err)
	}
	if res.Outcome != lifecycle.OutcomeOK {
		t.Fatalf("Startup() outcome = %s, reason = %v", res.Outcome, res.Reason)
	}
	if !res.At.Equal(startedAt) {
		t.Errorf("At = %v, want %v", res.At, startedAt)
	}
	if h.State() != lifecycle.Started {
		t.Errorf("State() = %s, want started", h.State())
	}

	want, _ := catalog.Get(components.ToastSileoID)
	got, ok := reg.Descriptor(components.ToastSileoID)
	if !ok || !got.Equal(want) {
		t.Fatal("registry should hold the toast descriptor after startup")
	}

	res, err = h.Shutdown(ctx)
	if err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if res.Outcome != lifecycle.OutcomeOK || len(res.IDs) != 1 {
		t.Errorf("Shutdown() = %+v", res)
	}
	if _, ok := reg.Descriptor(components.ToastSileoID); ok {
		t.Error("registry should not hold the toast descriptor after shutdown")
	}
	if h.State() != lifecycle.Stopped {
		t.Errorf("State() = %s, want stopped", h.State())
	}
}

func TestDesignerHook_StartupReplacesExisting(t *testing.T) {
	ctx := context.Background()
	catalog := loadCatalog(t)
	reg := memory.NewRegistry()
	d, _ := catalog.Get(components.ToastSileoID)
	reg.RegisterComponent(ctx, d)

	h := app.NewDesignerHook(catalog, testDeps(nil, "designer"))
	if _, err := h.Startup(ctx, host.New(reg), license.Default()); err != nil {
		t.Fatalf("Startup() error = %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestDesignerHook_RegistryUnavailable(t *testing.T) {
	tests := []struct {
		name string
		ctx  *host.Context
	}{
		{"no registry", host.New(nil)},
		{"no rendering", host.WithoutRendering()},
		{"nil context", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := app.NewDesignerHook(loadCatalog(t), testDeps(&buf, "designer"))

			res, err := h.Startup(context.Background(), tt.ctx, license.Default())
			if err != nil {
				t.Fatalf("Startup() error = %v", err)
			}
			if !res.Degraded() || !errors.Is(res.Reason, lifecycle.ErrRegistryUnavailable) {
				t.Errorf("Startup() = %+v, want degraded with ErrRegistryUnavailable", res)
			}
			if h.State() != lifecycle.Started {
				t.Errorf("State() = %s, want started", h.State())
			}
			if !strings.Contains(buf.String(), `"level":"error"`) {
				t.Error("expected an error log for the missing registry")
			}

			res, err = h.Shutdown(context.Background())
			if err != nil || res.Outcome != lifecycle.OutcomeNoop {
				t.Errorf("Shutdown() = %+v, %v, want noop", res, err)
			}
		})
	}
}

func TestDesignerHook_StartupTwice(t *testing.T) {
	ctx := context.Background()
	h := app.NewDesignerHook(loadCatalog(t), testDeps(nil, "designer"))
	hc := host.New(memory.NewRegistry())

	if _, err := h.Startup(ctx, hc, license.Default()); err != nil {
		t.Fatalf("first Startup() error = %v", err)
	}
	res, err := h.Startup(ctx, hc, license.Default())
	if !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Errorf("second Startup() error = %v, want ErrInvalidTransition", err)
	}
	if res.Outcome != lifecycle.OutcomeNoop || !errors.Is(res.Reason, lifecycle.ErrInvalidTransition) {
		t.Errorf("second Startup() = %+v, want noop with the transition error", res)
	}

	h.Shutdown(ctx)
	if _, err := h.Startup(ctx, hc, license.Default()); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Errorf("Startup() after Shutdown() error = %v, want ErrInvalidTransition", err)
	}
}

func TestDesignerHook_LogsProcessAndInstance(t *testing.T) {
	var buf bytes.Buffer
	h := app.NewDesignerHook(loadCatalog(t), testDeps(&buf, "designer"))

	if h.InstanceID() != "designer-1" {
		t.Errorf("InstanceID() = %s, want designer-1", h.InstanceID())
	}
	out := buf.String()
	for _, want := range []string{`"process":"designer"`, `"instance":"designer-1"`, "module hook created"} {
		if !strings.Contains(out, want) {
			t.Errorf("construction log missing %s: %s", want, out)
		}
	}
}

// -----------------------------------------------------------------------------
// Gateway
// -----------------------------------------------------------------------------

func TestGatewayHook_Lifecycle(t *testing.T) {
	ctx := context.Background()
	reg := memory.NewRegistry()
	h := app.NewGatewayHook(loadCatalog(t), nil, testDeps(nil, "gateway"))

	h.Setup(host.New(reg))
	if reg.Len() != 0 {
		t.Fatal("Setup() must not register anything")
	}

	res, err := h.Startup(ctx, license.Default())
	if err != nil {
		t.Fatalf("Startup() error = %v", err)
	}
	if res.Outcome != lifecycle.OutcomeOK || reg.Len() != 1 {
		t.Fatalf("Startup() = %+v, registry len = %d", res, reg.Len())
	}
	if !h.Ready() {
		t.Error("Ready() should be true after a clean startup")
	}
	if got := h.Registered(); len(got) != 1 || got[0] != components.ToastSileoID {
		t.Errorf("Registered() = %v", got)
	}

	if _, err := h.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("registry len after shutdown = %d, want 0", reg.Len())
	}
	if h.Ready() {
		t.Error("Ready() should be false after shutdown")
	}
}

func TestGatewayHook_RegistryUnavailable(t *testing.T) {
	var buf bytes.Buffer
	h := app.NewGatewayHook(loadCatalog(t), nil, testDeps(&buf, "gateway"))
	h.Setup(host.New(nil))

	res, err := h.Startup(context.Background(), license.Default())
	if err != nil {
		t.Fatalf("Startup() error = %v", err)
	}
	if h.State() != lifecycle.Started {
		t.Errorf("State() = %s, want started", h.State())
	}
	if !res.Degraded() || len(res.IDs) != 0 {
		t.Errorf("Startup() = %+v, want degraded with nothing registered", res)
	}
	if h.Ready() {
		t.Error("Ready() should be false after a degraded startup")
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("expected an error log, got %s", buf.String())
	}
}

func TestGatewayHook_TypedNilRegistry(t *testing.T) {
	h := app.NewGatewayHook(loadCatalog(t), nil, testDeps(nil, "gateway"))
	h.Setup(host.New((*memory.Registry)(nil)))

	res, err := h.Startup(context.Background(), license.Default())
	if err != nil {
		t.Fatalf("Startup() error = %v", err)
	}
	if !res.Degraded() || !errors.Is(res.Reason, lifecycle.ErrRegistryUnavailable) {
		t.Errorf("Startup() = %+v, want degraded with registry unavailable", res)
	}
	if res, err := h.Shutdown(context.Background()); err != nil || res.Outcome != lifecycle.OutcomeNoop {
		t.Errorf("Shutdown() = %+v, %v, want noop", res, err)
	}
}

func TestGatewayHook_StartupWithoutSetup(t *testing.T) {
	h := app.NewGatewayHook(loadCatalog(t), nil, testDeps(nil, "gateway"))

	res, err := h.Startup(context.Background(), license.Default())
	if err != nil {
		t.Fatalf("Startup() error = %v", err)
	}
	if !res.Degraded() {
		t.Errorf("Startup() outcome = %s, want degraded", res.Outcome)
	}
}

func TestGatewayHook_ShutdownWithoutStartup(t *testing.T) {
	var buf bytes.Buffer
	h := app.NewGatewayHook(loadCatalog(t), nil, testDeps(&buf, "gateway"))

	res, err := h.Shutdown(context.Background())
	if err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if res.Outcome != lifecycle.OutcomeNoop {
		t.Errorf("Shutdown() outcome = %s, want noop", res.Outcome)
	}
	if h.State() != lifecycle.Stopped {
		t.Errorf("State() = %s, want stopped", h.State())
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected a warning log, got %s", buf.String())
	}

	res, err = h.Shutdown(context.Background())
	if err != nil || res.Outcome != lifecycle.OutcomeNoop {
		t.Errorf("second Shutdown() = %+v, %v, want noop", res, err)
	}
}

func TestGatewayHook_ModuleSurface(t *testing.T) {
	mounted := false
	routes := func(r chi.Router) { mounted = true }
	h := app.NewGatewayHook(loadCatalog(t), routes, testDeps(nil, "gateway"))

	if folder, ok := h.MountedResourceFolder(); !ok || folder != "mounted" {
		t.Errorf("MountedResourceFolder() = %q, %v", folder, ok)
	}
	if alias, ok := h.MountPathAlias(); !ok || alias != "radcomponents" {
		t.Errorf("MountPathAlias() = %q, %v", alias, ok)
	}
	if !h.IsMakerEditionCompatible() || !h.IsFreeModule() {
		t.Error("module should be maker edition compatible and free")
	}

	h.MountRouteHandlers(chi.NewRouter())
	if !mounted {
		t.Error("MountRouteHandlers() should call the route mounter")
	}
}

func TestGatewayHook_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus(zerolog.Nop())

	var got []events.Event
	bus.Subscribe("*", func(ctx context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})

	deps := testDeps(nil, "gateway")
	deps.Events = bus
	h := app.NewGatewayHook(loadCatalog(t), nil, deps)
	h.Setup(host.New(memory.NewRegistry()))
	h.Startup(ctx, license.Default())
	h.Shutdown(ctx)

	want := []string{
		events.ComponentRegistered,
		events.HookStarted,
		events.ComponentRemoved,
		events.HookStopped,
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("event[%d] = %s, want %s", i, got[i].Name, name)
		}
		if got[i].Process != app.ProcessGateway || got[i].Instance != "gateway-1" {
			t.Errorf("event[%d] = %+v", i, got[i])
		}
	}
	if got[0].Component != components.ToastSileoID {
		t.Errorf("registered component = %s", got[0].Component)
	}
}
