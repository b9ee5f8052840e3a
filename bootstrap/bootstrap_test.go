package bootstrap_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fakester/radcomponents/adapters/sqlite"
	"github.com/fakester/radcomponents/bootstrap"
	"github.com/fakester/radcomponents/config"
	"github.com/fakester/radcomponents/domain/license"
	"github.com/rs/zerolog"
)

func testHolder(t *testing.T, content string) *config.Holder {
	t.Helper()
	cfg, err := config.Parse([]byte(content))
	if err != nil {
		t.Fatalf("config.Parse() error = %v", err)
	}
	return config.NewStaticHolder(cfg, zerolog.Nop())
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger := bootstrap.NewLogger("debug", "json", &buf)
	logger.Debug().Msg("hello")
	if !strings.Contains(buf.String(), `"level":"debug"`) || !strings.Contains(buf.String(), `"message":"hello"`) {
		t.Errorf("json output = %q", buf.String())
	}

	buf.Reset()
	logger = bootstrap.NewLogger("bogus", "console", &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("console output = %q", buf.String())
	}
	if strings.HasPrefix(buf.String(), "{") {
		t.Error("console format should not write JSON")
	}
}

func TestOpenRegistry(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.RegistryConfig
		available bool
		wantDB    bool
	}{
		{"memory", config.RegistryConfig{Driver: config.DriverMemory}, true, false},
		{"sqlite", config.RegistryConfig{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "reg.db")}, true, true},
		{"none", config.RegistryConfig{Driver: config.DriverNone}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := bootstrap.OpenRegistry(tt.cfg, sqlite.ScopeGateway, nil)
			if err != nil {
				t.Fatalf("OpenRegistry() error = %v", err)
			}
			defer reg.Close()

			if reg.Available() != tt.available {
				t.Errorf("Available() = %v, want %v", reg.Available(), tt.available)
			}
			if (reg.DB != nil) != tt.wantDB {
				t.Errorf("DB set = %v, want %v", reg.DB != nil, tt.wantDB)
			}
		})
	}

	if _, err := bootstrap.OpenRegistry(config.RegistryConfig{Driver: "redis"}, sqlite.ScopeGateway, nil); err == nil {
		t.Error("OpenRegistry(redis) should fail")
	}
}

func TestApp_GatewayLifecycle(t *testing.T) {
	holder := testHolder(t, "metrics:\n  enabled: true\n")

	a, err := bootstrap.New(holder, bootstrap.Options{Version: "1.2.3", Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if rec := get(t, a.Handler, "/health/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready before start = %d, want 503", rec.Code)
	}

	res, err := a.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if res.Degraded() || len(res.IDs) != a.Catalog.Len() {
		t.Errorf("Start() = %+v, want all %d components", res, a.Catalog.Len())
	}

	if rec := get(t, a.Handler, "/health/ready"); rec.Code != http.StatusOK {
		t.Errorf("ready after start = %d, want 200", rec.Code)
	}
	rec := get(t, a.Handler, "/module/licenseState")
	if rec.Body.String() != `{"isActivated":true,"isTrialExpired":false}` {
		t.Errorf("licenseState body = %q", rec.Body.String())
	}
	if rec := get(t, a.Handler, "/res/radcomponents/RadComponents.js"); rec.Code != http.StatusOK {
		t.Errorf("resource status = %d, want 200", rec.Code)
	}
	if rec := get(t, a.Handler, "/metrics"); !strings.Contains(rec.Body.String(), "radcomponents_license_state_requests_total 1") {
		t.Error("metrics should count the license state request")
	}

	records, err := a.Registry.Lookup.Components(context.Background())
	if err != nil || len(records) != a.Catalog.Len() {
		t.Fatalf("Components() = %d, %v", len(records), err)
	}

	if err := a.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	records, _ = a.Registry.Lookup.Components(context.Background())
	if len(records) != 0 {
		t.Errorf("registry after shutdown has %d components, want 0", len(records))
	}
}

func TestApp_NoRegistry(t *testing.T) {
	var buf bytes.Buffer
	holder := testHolder(t, "registry:\n  driver: none\n")

	a, err := bootstrap.New(holder, bootstrap.Options{Logger: zerolog.New(&buf)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Shutdown()

	res, err := a.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !res.Degraded() || len(res.IDs) != 0 {
		t.Errorf("Start() = %+v, want degraded with nothing registered", res)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Error("missing registry should be logged as an error")
	}
	if rec := get(t, a.Handler, "/health/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready = %d, want 503", rec.Code)
	}
	if rec := get(t, a.Handler, "/module/licenseState"); rec.Code != http.StatusOK {
		t.Errorf("licenseState status = %d, want 200", rec.Code)
	}
}

func TestApp_LicenseFromConfig(t *testing.T) {
	holder := testHolder(t, "license:\n  activated: false\n  trial_expired: true\n")

	a, err := bootstrap.New(holder, bootstrap.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Shutdown()

	rec := get(t, a.Handler, "/module/licenseState")
	if rec.Body.String() != `{"isActivated":false,"isTrialExpired":true}` {
		t.Errorf("licenseState body = %q", rec.Body.String())
	}
}

func TestDesignerAndGateway_ShareSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "shared.db")
	content := "registry:\n  driver: sqlite\n  dsn: " + dsn + "\n"
	ctx := context.Background()

	gw, err := bootstrap.New(testHolder(t, content), bootstrap.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer gw.Shutdown()
	if _, err := gw.Start(ctx); err != nil {
		t.Fatalf("gateway Start() error = %v", err)
	}

	cfg, _ := config.Parse([]byte(content))
	d, err := bootstrap.NewDesigner(cfg, bootstrap.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewDesigner() error = %v", err)
	}
	defer d.Close(ctx)

	res, err := d.Start(ctx, license.Default())
	if err != nil || res.Degraded() {
		t.Fatalf("designer Start() = %+v, %v", res, err)
	}

	records, err := d.Components(ctx)
	if err != nil || len(records) != d.Catalog.Len() {
		t.Fatalf("designer Components() = %d, %v", len(records), err)
	}

	summaries, err := sqlite.Scopes(ctx, gw.Registry.DB)
	if err != nil {
		t.Fatalf("Scopes() error = %v", err)
	}
	for _, s := range summaries {
		if s.Components != d.Catalog.Len() {
			t.Errorf("scope %s has %d components, want %d", s.Scope, s.Components, d.Catalog.Len())
		}
	}

	drift, err := sqlite.Compare(ctx, gw.Registry.DB)
	if err != nil || len(drift) != 0 {
		t.Errorf("Compare() = %v, %v, want no differences", drift, err)
	}
}

func TestDesigner_NoRegistry(t *testing.T) {
	cfg, _ := config.Parse([]byte("registry:\n  driver: none\n"))
	d, err := bootstrap.NewDesigner(cfg, bootstrap.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewDesigner() error = %v", err)
	}

	res, err := d.Start(context.Background(), license.Default())
	if err != nil || !res.Degraded() {
		t.Errorf("Start() = %+v, %v, want degraded", res, err)
	}
	records, err := d.Components(context.Background())
	if err != nil || records != nil {
		t.Errorf("Components() = %v, %v", records, err)
	}
	if err := d.Close(context.Background()); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
