// Package metrics exposes prometheus collectors for registry fan-out.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	sourceRequests *prometheus.CounterVec
	sourceDuration *prometheus.HistogramVec
	sourceResults  *prometheus.CounterVec
	searches       *prometheus.CounterVec
	logDropped     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.sourceRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "companysearch",
		Name:      "source_requests_total",
		Help:      "Registry searches by source and outcome",
	}, []string{"source", "outcome"})
	m.sourceDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "companysearch",
		Name:      "source_duration_seconds",
		Help:      "Time spent in each registry search",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 12},
	}, []string{"source"})
	m.sourceResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "companysearch",
		Name:      "source_results_total",
		Help:      "Records returned by each registry before merging",
	}, []string{"source"})
	m.searches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "companysearch",
		Name:      "searches_total",
		Help:      "Aggregated searches by outcome",
	}, []string{"outcome"})
	m.logDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "companysearch",
		Name:      "search_log_dropped_total",
		Help:      "Search log entries dropped because the queue was full or closed",
	})
	m.registry.MustRegister(
		m.sourceRequests, m.sourceDuration, m.sourceResults, m.searches, m.logDropped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSource records one adapter call.
func (m *Metrics) ObserveSource(source string, d time.Duration, results int, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.sourceRequests.WithLabelValues(source, outcome).Inc()
	m.sourceDuration.WithLabelValues(source).Observe(d.Seconds())
	m.sourceResults.WithLabelValues(source).Add(float64(results))
}

// ObserveSearch records the outcome of one aggregated search: ok, partial,
// invalid or error.
func (m *Metrics) ObserveSearch(outcome string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SearchLogDropped() {
	if m == nil {
		return
	}
	m.logDropped.Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
