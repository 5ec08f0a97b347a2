package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "saferoute"

// Metrics holds the Prometheus collectors for the hazard registry, the
// broadcast fan-out and the outbound integrations.
type Metrics struct {
	HazardMutations *prometheus.CounterVec // labels: op={create,delete,verify}, outcome={ok,not_found,invalid}
	HazardsActive   prometheus.Gauge

	SubscribersConnected prometheus.Gauge
	EventsPublished      *prometheus.CounterVec // labels: type={new_hazard,delete_hazard}
	DeliveryFailures     *prometheus.CounterVec // labels: reason={buffer_full,gone}

	ExternalRequests *prometheus.CounterVec   // labels: service={search,route}, outcome={success,error}
	ExternalDuration *prometheus.HistogramVec // labels: service={search,route}

	EventsExported *prometheus.CounterVec // labels: sink, outcome={success,error}
}

// NewMetrics creates and registers all collectors with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.HazardMutations,
		m.HazardsActive,
		m.SubscribersConnected,
		m.EventsPublished,
		m.DeliveryFailures,
		m.ExternalRequests,
		m.ExternalDuration,
		m.EventsExported,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors so tests can build
// as many instances as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HazardMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hazard_mutations_total",
			Help:      "Hazard create/delete/verify requests by outcome.",
		}, []string{"op", "outcome"}),
		HazardsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hazards_active",
			Help:      "Number of hazards currently held in memory.",
		}),
		SubscribersConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subscribers_connected",
			Help:      "Observers currently registered for live updates.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Broadcast events published by type.",
		}, []string{"type"}),
		DeliveryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_failures_total",
			Help:      "Per-subscriber delivery failures; each one evicts the subscriber.",
		}, []string{"reason"}),
		ExternalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "external_requests_total",
			Help:      "Calls to the place search and routing services by outcome.",
		}, []string{"service", "outcome"}),
		ExternalDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_request_duration_seconds",
			Help:      "Latency of place search and routing calls.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"service"}),
		EventsExported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_exported_total",
			Help:      "Hazard events forwarded to export sinks by outcome.",
		}, []string{"sink", "outcome"}),
	}
}
