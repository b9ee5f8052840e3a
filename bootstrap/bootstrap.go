// Package bootstrap wires the module into a runnable host: it selects the
// component registry, builds the hooks, and serves the gateway routes.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fakester/radcomponents/adapters/host"
	apihttp "github.com/fakester/radcomponents/adapters/http"
	"github.com/fakester/radcomponents/adapters/idgen"
	"github.com/fakester/radcomponents/adapters/metrics"
	"github.com/fakester/radcomponents/adapters/sqlite"
	"github.com/fakester/radcomponents/app"
	"github.com/fakester/radcomponents/components"
	"github.com/fakester/radcomponents/config"
	"github.com/fakester/radcomponents/core/events"
	"github.com/fakester/radcomponents/core/lifecycle"
	"github.com/fakester/radcomponents/ports"
	"github.com/fakester/radcomponents/resources"
	"github.com/rs/zerolog"
)

// Options are the process-level inputs to New.
type Options struct {
	Version string
	Logger  zerolog.Logger
	Clock   ports.Clock // default system clock
}

// App is the gateway process host.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Holder
	Catalog    *components.Catalog
	Registry   *Registry
	Events     *events.Bus
	Metrics    *metrics.Collector
	Hook       *app.GatewayHook
	Handler    http.Handler
	HTTPServer *http.Server
}

// New builds the gateway host from the configuration in holder. A catalog
// that fails to load is fatal. A registry driver of "none" is not: the hook
// starts degraded.
func New(holder *config.Holder, opts Options) (*App, error) {
	cfg := holder.Get()
	logger := opts.Logger

	logger.Info().
		Str("version", opts.Version).
		Str("registry", cfg.Registry.Driver).
		Msg("initializing radcomponents gateway")

	catalog, err := components.Load(resources.FS())
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}

	reg, err := OpenRegistry(cfg.Registry, sqlite.ScopeGateway, opts.Clock)
	if err != nil {
		return nil, err
	}

	a := &App{
		Logger:   logger,
		Config:   holder,
		Catalog:  catalog,
		Registry: reg,
		Events:   events.NewBus(logger),
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		a.Metrics.Subscribe(a.Events)
		logger.Info().Str("path", cfg.Metrics.Path).Msg("prometheus metrics enabled")
	}

	holder.OnChange(a.onConfigChange)
	holder.OnReloadError(func(error) {
		if a.Metrics != nil {
			a.Metrics.ConfigReloadErrors.Inc()
		}
	})

	a.Hook = app.NewGatewayHook(catalog, apihttp.StatusRoutes(holder, a.Metrics), app.Deps{
		Logger: logger,
		Clock:  opts.Clock,
		IDGen:  idgen.UUID{},
		Events: a.Events,
	})
	a.Hook.Setup(host.New(reg.Store))

	a.Handler = apihttp.NewRouter(apihttp.RouterConfig{
		Logger:         logger,
		Version:        opts.Version,
		Metrics:        a.Metrics,
		MetricsPath:    cfg.Metrics.Path,
		EnableOpenAPI:  cfg.OpenAPI.Enabled,
		Module:         a.Hook,
		Resources:      resources.Mounted(),
		Health:         a.Hook,
		RequestTimeout: cfg.Server.WriteTimeout,
	})

	a.HTTPServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      a.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return a, nil
}

// Start runs the gateway hook startup with the current license state.
func (a *App) Start(ctx context.Context) (lifecycle.Result, error) {
	res, err := a.Hook.Startup(ctx, a.Config.LicenseState())
	if err != nil {
		return res, fmt.Errorf("start gateway hook: %w", err)
	}
	return res, nil
}

// Run starts the hook and serves HTTP until SIGINT or SIGTERM.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.Start(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-ctx.Done():
		a.Logger.Info().Msg("context cancelled, shutting down")
	}

	return errors.Join(runErr, a.Shutdown())
}

// Shutdown stops the HTTP server, runs the hook shutdown and releases the
// registry. Every step runs even when an earlier one fails.
func (a *App) Shutdown() error {
	timeout := a.Config.Get().Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
	}

	if a.Hook != nil {
		if _, err := a.Hook.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("gateway hook: %w", err))
		}
	}

	a.Config.Stop()

	if err := a.Registry.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("registry close error")
		errs = append(errs, fmt.Errorf("registry: %w", err))
	}

	a.Logger.Info().Msg("shutdown complete")
	return errors.Join(errs...)
}

func (a *App) onConfigChange(cfg *config.Config) {
	SetLogLevel(cfg.Logging.Level)
	if a.Metrics != nil {
		a.Metrics.ConfigReloads.Inc()
	}
}
