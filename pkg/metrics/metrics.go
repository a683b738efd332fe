package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the tracker counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	WeightRecords        *prometheus.CounterVec
	AlertsTriggered      *prometheus.CounterVec
	AlertsSuppressed     *prometheus.CounterVec
	InterventionsClosed  *prometheus.CounterVec
	TreatmentTransitions *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		WeightRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weight_records_total",
			Help:      "Weight records written, by operation",
		}, []string{"operation"}),
		AlertsTriggered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_triggered_total",
			Help:      "Pending interventions created by alert rules",
		}, []string{"type"}),
		AlertsSuppressed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_suppressed_total",
			Help:      "Alerts that matched an already pending intervention",
		}, []string{"type"}),
		InterventionsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interventions_closed_total",
			Help:      "Interventions moved out of pending, by resulting status",
		}, []string{"status"}),
		TreatmentTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "treatment_transitions_total",
			Help:      "Treatment lifecycle transitions, by target status",
		}, []string{"to"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"method", "path", "status"}),
	}

	registry.MustRegister(
		m.WeightRecords,
		m.AlertsTriggered,
		m.AlertsSuppressed,
		m.InterventionsClosed,
		m.TreatmentTransitions,
		m.RequestDuration,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// the helpers below accept a nil receiver so the core can run without metrics

func (m *Metrics) WeightRecorded(operation string) {
	if m == nil {
		return
	}
	m.WeightRecords.WithLabelValues(operation).Inc()
}

func (m *Metrics) AlertTriggered(kind string) {
	if m == nil {
		return
	}
	m.AlertsTriggered.WithLabelValues(kind).Inc()
}

func (m *Metrics) AlertSuppressed(kind string) {
	if m == nil {
		return
	}
	m.AlertsSuppressed.WithLabelValues(kind).Inc()
}

func (m *Metrics) InterventionClosed(status string) {
	if m == nil {
		return
	}
	m.InterventionsClosed.WithLabelValues(status).Inc()
}

func (m *Metrics) TreatmentTransition(to string) {
	if m == nil {
		return
	}
	m.TreatmentTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) ObserveRequest(method string, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
