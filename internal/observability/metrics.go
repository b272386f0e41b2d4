package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// destination resolver.
type Metrics struct {
	Resolutions *prometheus.CounterVec // labels: source={place,geocode,query}, category

	// Provider API metrics.
	ProviderRequests    *prometheus.CounterVec   // labels: endpoint={places,geocode}, outcome={success,error,empty}
	ProviderAPIDuration *prometheus.HistogramVec // labels: endpoint={places,geocode}

	// Audit event publishing metrics.
	EventsPublished    prometheus.Counter
	EventPublishErrors prometheus.Counter
	PublisherEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all resolver metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dest_resolver",
			Name:      "resolutions_total",
			Help:      "Destination resolutions by producing stage and place category.",
		}, []string{"source", "category"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dest_resolver",
			Name:      "provider_requests_total",
			Help:      "Mapping provider requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		ProviderAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dest_resolver",
			Name:      "provider_api_duration_seconds",
			Help:      "Mapping provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dest_resolver",
			Name:      "events_published_total",
			Help:      "Resolution audit events written to the events topic.",
		}),
		EventPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dest_resolver",
			Name:      "event_publish_errors_total",
			Help:      "Failed attempts to publish a resolution audit event.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dest_resolver",
			Name:      "publisher_enabled",
			Help:      "1 when audit event publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.Resolutions,
		m.ProviderRequests,
		m.ProviderAPIDuration,
		m.EventsPublished,
		m.EventPublishErrors,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Resolutions:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "dest_resolver", Name: "resolutions_total"}, []string{"source", "category"}),
		ProviderRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "dest_resolver", Name: "provider_requests_total"}, []string{"endpoint", "outcome"}),
		ProviderAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "dest_resolver", Name: "provider_api_duration_seconds"}, []string{"endpoint"}),
		EventsPublished:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "dest_resolver", Name: "events_published_total"}),
		EventPublishErrors:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "dest_resolver", Name: "event_publish_errors_total"}),
		PublisherEnabled:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "dest_resolver", Name: "publisher_enabled"}),
	}
}
