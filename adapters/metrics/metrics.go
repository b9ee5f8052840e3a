// Package metrics provides Prometheus metrics for the module hooks and the
// reference host.
package metrics

import (
	"context"
	"net/http"

	"github.com/fakester/radcomponents/core/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "radcomponents"

// Collector holds all Prometheus metrics for the module.
type Collector struct {
	gatherer prometheus.Gatherer

	// Registry metrics
	Registrations        *prometheus.CounterVec
	Removals             *prometheus.CounterVec
	RegisteredComponents *prometheus.GaugeVec

	// Lifecycle metrics
	Transitions      *prometheus.CounterVec
	DegradedStartups *prometheus.CounterVec

	// HTTP metrics
	LicenseStateRequests prometheus.Counter
	RequestDuration      *prometheus.HistogramVec

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter
}

// New creates a collector backed by its own registry, with Go and process
// collectors included.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c := NewWithRegistry(reg)
	c.gatherer = reg
	return c
}

// NewWithRegistry creates a collector that registers into reg. When reg is
// also a Gatherer, Handler serves it.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	c := &Collector{
		Registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "component_registrations_total",
				Help:      "Total number of components registered",
			},
			[]string{"process"},
		),
		Removals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "component_removals_total",
				Help:      "Total number of components removed",
			},
			[]string{"process"},
		),
		RegisteredComponents: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "registered_components",
				Help:      "Number of components currently registered by this module",
			},
			[]string{"process"},
		),
		Transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lifecycle_transitions_total",
				Help:      "Total number of hook lifecycle transitions",
			},
			[]string{"process", "state"},
		),
		DegradedStartups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "degraded_startups_total",
				Help:      "Total number of startups that completed degraded",
			},
			[]string{"process"},
		),
		LicenseStateRequests: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "license_state_requests_total",
				Help:      "Total number of license state requests served",
			},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "route", "status"},
		),
		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reloads_total",
				Help:      "Total number of successful config reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reload_errors_total",
				Help:      "Total number of config reload errors",
			},
		),
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		c.gatherer = g
	}
	return c
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Subscribe records lifecycle events from bus.
func (c *Collector) Subscribe(bus *events.Bus) {
	bus.Subscribe("component.*", func(ctx context.Context, e events.Event) error {
		switch e.Name {
		case events.ComponentRegistered:
			c.Registrations.WithLabelValues(e.Process).Inc()
			c.RegisteredComponents.WithLabelValues(e.Process).Inc()
		case events.ComponentRemoved:
			c.Removals.WithLabelValues(e.Process).Inc()
			c.RegisteredComponents.WithLabelValues(e.Process).Dec()
		}
		return nil
	})
	bus.Subscribe("hook.*", func(ctx context.Context, e events.Event) error {
		switch e.Name {
		case events.HookStarted:
			c.Transitions.WithLabelValues(e.Process, "started").Inc()
		case events.HookDegraded:
			c.Transitions.WithLabelValues(e.Process, "started").Inc()
			c.DegradedStartups.WithLabelValues(e.Process).Inc()
		case events.HookStopped:
			c.Transitions.WithLabelValues(e.Process, "stopped").Inc()
		}
		return nil
	})
}
