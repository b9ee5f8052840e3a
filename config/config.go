// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fakester/radcomponents/domain/license"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "radcomponents.yaml"

// Registry drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverNone   = "none" // the host exposes no registry
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Registry RegistryConfig `yaml:"registry"`
	License  LicenseConfig  `yaml:"license"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	OpenAPI  OpenAPIConfig  `yaml:"openapi"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RegistryConfig selects the host component registry.
type RegistryConfig struct {
	Driver string `yaml:"driver"` // "memory", "sqlite" or "none"
	DSN    string `yaml:"dsn"`    // sqlite database path
}

// LicenseConfig is the license state reported by the module.
type LicenseConfig struct {
	Activated    *bool `yaml:"activated"` // default true
	TrialExpired bool  `yaml:"trial_expired"`
}

// State returns the configured license state.
func (l LicenseConfig) State() license.State {
	s := license.Default()
	if l.Activated != nil {
		s.Activated = *l.Activated
	}
	s.TrialExpired = l.TrialExpired
	return s
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // Enable /metrics endpoint
	Path    string `yaml:"path"`    // Custom path (default: /metrics)
}

// OpenAPIConfig configures OpenAPI/Swagger documentation.
type OpenAPIConfig struct {
	Enabled bool `yaml:"enabled"` // Enable OpenAPI endpoints
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expanding environment variables and
// applying overrides and defaults.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	RADCOMPONENTS_SERVER_HOST            - Server host (default: 0.0.0.0)
//	RADCOMPONENTS_SERVER_PORT            - Server port (default: 8088)
//	RADCOMPONENTS_REGISTRY_DRIVER        - memory, sqlite or none (default: memory)
//	RADCOMPONENTS_REGISTRY_DSN           - SQLite path (default: radcomponents.db)
//	RADCOMPONENTS_LICENSE_ACTIVATED      - License activated (default: true)
//	RADCOMPONENTS_LICENSE_TRIAL_EXPIRED  - Trial expired (default: false)
//	RADCOMPONENTS_LOG_LEVEL              - debug, info, warn, error (default: info)
//	RADCOMPONENTS_LOG_FORMAT             - json or console (default: json)
//	RADCOMPONENTS_METRICS_ENABLED        - Enable /metrics endpoint (default: false)
//	RADCOMPONENTS_OPENAPI_ENABLED        - Enable OpenAPI/Swagger (default: false)
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback loads path when it exists and falls back to environment
// variables otherwise.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

// applyEnvOverrides applies RADCOMPONENTS_* environment variables to the
// config. Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Server configuration
	if v := os.Getenv("RADCOMPONENTS_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("RADCOMPONENTS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RADCOMPONENTS_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("RADCOMPONENTS_SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if v := os.Getenv("RADCOMPONENTS_SERVER_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	// Registry configuration
	if v := os.Getenv("RADCOMPONENTS_REGISTRY_DRIVER"); v != "" {
		cfg.Registry.Driver = v
	}
	if v := os.Getenv("RADCOMPONENTS_REGISTRY_DSN"); v != "" {
		cfg.Registry.DSN = v
	}

	// License configuration
	if v := os.Getenv("RADCOMPONENTS_LICENSE_ACTIVATED"); v != "" {
		activated := parseBool(v)
		cfg.License.Activated = &activated
	}
	if v := os.Getenv("RADCOMPONENTS_LICENSE_TRIAL_EXPIRED"); v != "" {
		cfg.License.TrialExpired = parseBool(v)
	}

	// Logging configuration
	if v := os.Getenv("RADCOMPONENTS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RADCOMPONENTS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Metrics configuration
	if v := os.Getenv("RADCOMPONENTS_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("RADCOMPONENTS_METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}

	if v := os.Getenv("RADCOMPONENTS_OPENAPI_ENABLED"); v != "" {
		cfg.OpenAPI.Enabled = parseBool(v)
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8088
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Registry.Driver == "" {
		cfg.Registry.Driver = DriverMemory
	}
	if cfg.Registry.Driver == DriverSQLite && cfg.Registry.DSN == "" {
		cfg.Registry.DSN = "radcomponents.db"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	validDrivers := map[string]bool{DriverMemory: true, DriverSQLite: true, DriverNone: true}
	if !validDrivers[cfg.Registry.Driver] {
		return fmt.Errorf("registry.driver must be one of: memory, sqlite, none, got %q", cfg.Registry.Driver)
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", cfg.Metrics.Path)
	}

	return nil
}
