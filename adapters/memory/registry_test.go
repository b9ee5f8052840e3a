package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fakester/radcomponents/adapters/memory"
	"github.com/fakester/radcomponents/components"
	"github.com/fakester/radcomponents/domain/component"
	"github.com/fakester/radcomponents/resources"
)

func toastSileo(t *testing.T) component.Descriptor {
	t.Helper()
	catalog, err := components.Load(resources.FS())
	if err != nil {
		t.Fatalf("components.Load() error = %v", err)
	}
	d, ok := catalog.Get(components.ToastSileoID)
	if !ok {
		t.Fatalf("catalog missing %s", components.ToastSileoID)
	}
	return d
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	ctx := context.Background()
	reg := memory.NewRegistry()
	d := toastSileo(t)

	if err := reg.RegisterComponent(ctx, d); err != nil {
		t.Fatalf("RegisterComponent() error = %v", err)
	}

	got, ok := reg.Descriptor(components.ToastSileoID)
	if !ok || !got.Equal(d) {
		t.Fatalf("Descriptor() = %v, %v", got.ID(), ok)
	}

	rec, ok, err := reg.Component(ctx, components.ToastSileoID)
	if err != nil || !ok {
		t.Fatalf("Component() = %v, %v", ok, err)
	}
	if rec.ModuleID != components.ModuleID {
		t.Errorf("ModuleID = %s, want %s", rec.ModuleID, components.ModuleID)
	}

	if _, ok, _ := reg.Component(ctx, "missing"); ok {
		t.Error("Component(missing) should not be found")
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	ctx := context.Background()
	reg := memory.NewRegistry()
	d := toastSileo(t)

	reg.RegisterComponent(ctx, d)
	reg.RegisterComponent(ctx, d)

	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistry_RegisterZeroDescriptor(t *testing.T) {
	reg := memory.NewRegistry()
	err := reg.RegisterComponent(context.Background(), component.Descriptor{})
	if !errors.Is(err, memory.ErrInvalidDescriptor) {
		t.Errorf("RegisterComponent(zero) error = %v, want ErrInvalidDescriptor", err)
	}
}

func TestRegistry_RemoveUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	reg := memory.NewRegistry()
	reg.RegisterComponent(ctx, toastSileo(t))

	if err := reg.RemoveComponent(ctx, "unknown"); err != nil {
		t.Errorf("RemoveComponent(unknown) error = %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}

	if err := reg.RemoveComponent(ctx, components.ToastSileoID); err != nil {
		t.Fatalf("RemoveComponent() error = %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Len() after remove = %d, want 0", reg.Len())
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	ctx := context.Background()
	reg := memory.NewRegistry()
	d := toastSileo(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg.RegisterComponent(ctx, d)
			reg.Components(ctx)
			reg.RemoveComponent(ctx, fmt.Sprintf("other-%d", i))
		}(i)
	}
	wg.Wait()

	list, err := reg.Components(ctx)
	if err != nil {
		t.Fatalf("Components() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != components.ToastSileoID {
		t.Errorf("Components() = %v", list)
	}
}
