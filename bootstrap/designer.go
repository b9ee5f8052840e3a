package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/fakester/radcomponents/adapters/host"
	"github.com/fakester/radcomponents/adapters/idgen"
	"github.com/fakester/radcomponents/adapters/sqlite"
	"github.com/fakester/radcomponents/app"
	"github.com/fakester/radcomponents/components"
	"github.com/fakester/radcomponents/config"
	"github.com/fakester/radcomponents/core/events"
	"github.com/fakester/radcomponents/core/lifecycle"
	"github.com/fakester/radcomponents/domain/component"
	"github.com/fakester/radcomponents/domain/license"
	"github.com/fakester/radcomponents/resources"
	"github.com/rs/zerolog"
)

// Designer hosts one designer process session.
type Designer struct {
	Logger   zerolog.Logger
	Catalog  *components.Catalog
	Registry *Registry
	Events   *events.Bus
	Hook     *app.DesignerHook
}

// NewDesigner builds a designer session from cfg.
func NewDesigner(cfg *config.Config, opts Options) (*Designer, error) {
	catalog, err := components.Load(resources.FS())
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}

	reg, err := OpenRegistry(cfg.Registry, sqlite.ScopeDesigner, opts.Clock)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	bus := events.NewBus(logger)
	bus.Subscribe("*", func(ctx context.Context, e events.Event) error {
		logger.Debug().
			Str("event", e.Name).
			Str("component", e.Component).
			Msg("designer event")
		return nil
	})

	return &Designer{
		Logger:   logger,
		Catalog:  catalog,
		Registry: reg,
		Events:   bus,
		Hook: app.NewDesignerHook(catalog, app.Deps{
			Logger: logger,
			Clock:  opts.Clock,
			IDGen:  idgen.UUID{},
			Events: bus,
		}),
	}, nil
}

// Start runs the designer hook startup against the configured registry.
func (d *Designer) Start(ctx context.Context, state license.State) (lifecycle.Result, error) {
	return d.Hook.Startup(ctx, host.New(d.Registry.Store), state)
}

// Components lists what the registry currently holds. It returns nothing
// when the host exposes no registry.
func (d *Designer) Components(ctx context.Context) ([]component.Record, error) {
	if d.Registry.Lookup == nil {
		return nil, nil
	}
	return d.Registry.Lookup.Components(ctx)
}

// Close runs the hook shutdown and releases the registry.
func (d *Designer) Close(ctx context.Context) error {
	var errs []error
	if _, err := d.Hook.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("designer hook: %w", err))
	}
	if err := d.Registry.Close(); err != nil {
		errs = append(errs, fmt.Errorf("registry: %w", err))
	}
	return errors.Join(errs...)
}
