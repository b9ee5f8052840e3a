package bootstrap

import (
	"fmt"

	"github.com/fakester/radcomponents/adapters/memory"
	"github.com/fakester/radcomponents/adapters/sqlite"
	"github.com/fakester/radcomponents/config"
	"github.com/fakester/radcomponents/ports"
)

// Registry is the host component registry selected by configuration.
// Store and Lookup are nil for the "none" driver.
type Registry struct {
	Driver string
	Store  ports.ComponentRegistry
	Lookup ports.ComponentLookup
	DB     *sqlite.DB // sqlite driver only
}

// OpenRegistry opens the registry configured in cfg. The sqlite driver
// stores rows under scope so the designer and gateway processes can share
// one database file.
func OpenRegistry(cfg config.RegistryConfig, scope sqlite.Scope, c ports.Clock) (*Registry, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		reg := memory.NewRegistry()
		return &Registry{Driver: config.DriverMemory, Store: reg, Lookup: reg}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open registry: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate registry: %w", err)
		}
		store := sqlite.NewComponentStore(db, scope, c)
		return &Registry{Driver: config.DriverSQLite, Store: store, Lookup: store, DB: db}, nil

	case config.DriverNone:
		return &Registry{Driver: config.DriverNone}, nil

	default:
		return nil, fmt.Errorf("unknown registry driver %q", cfg.Driver)
	}
}

// Available reports whether the host exposes a registry.
func (r *Registry) Available() bool {
	return r != nil && r.Store != nil
}

// Close releases the underlying database, if any.
func (r *Registry) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}
