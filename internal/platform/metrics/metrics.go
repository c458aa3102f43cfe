package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "provenance"

// Metrics owns a private registry so tests and processes never collide on the
// global default registerer.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	OutboxPublished     *prometheus.CounterVec
	OutboxFailures      *prometheus.CounterVec
	LedgerEvents        *prometheus.CounterVec
	Payouts             *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern and status code",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"method", "route"}),
		OutboxPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "published_total",
			Help:      "outbox rows relayed to the event bus",
		}, []string{"source", "event_type"}),
		OutboxFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "failures_total",
			Help:      "outbox relay failures by stage",
		}, []string{"source", "stage"}),
		LedgerEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "events_consumed_total",
			Help:      "ledger events observed by the audit consumer",
		}, []string{"event_type"}),
		Payouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "escrow",
			Name:      "payouts_total",
			Help:      "escrow payouts handed to the payment rail by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObservePublished(source string, eventType string) {
	if m == nil {
		return
	}
	m.OutboxPublished.WithLabelValues(source, eventType).Inc()
}

func (m *Metrics) ObserveRelayFailure(source string, stage string) {
	if m == nil {
		return
	}
	m.OutboxFailures.WithLabelValues(source, stage).Inc()
}

func (m *Metrics) ObserveLedgerEvent(eventType string) {
	if m == nil {
		return
	}
	m.LedgerEvents.WithLabelValues(eventType).Inc()
}

func (m *Metrics) ObservePayout(outcome string) {
	if m == nil {
		return
	}
	m.Payouts.WithLabelValues(outcome).Inc()
}
