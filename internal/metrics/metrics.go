// Package metrics exposes Prometheus instrumentation for the search driver.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the container for all search-engine instrumentation.
type Metrics struct {
	ConstructionsTotal    *prometheus.CounterVec
	ConstructionDuration  prometheus.Histogram
	EliteAdmissionsTotal  prometheus.Counter
	GammaEscalationsTotal prometheus.Counter
	BestDeterministicCost prometheus.Gauge
	BestStochasticCost    prometheus.Gauge
}

var defaultMetrics *Metrics

// Init registers and returns the metrics container. Safe to call once per
// process; subsequent calls return the already-registered instance.
func Init(namespace, subsystem string) *Metrics {
	if defaultMetrics != nil {
		return defaultMetrics
	}

	m := &Metrics{
		ConstructionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "constructions_total",
				Help:      "Total number of constructor invocations, by feasibility outcome.",
			},
			[]string{"feasible"},
		),
		ConstructionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "construction_duration_seconds",
				Help:      "Wall-clock duration of a single constructor invocation.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		EliteAdmissionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "elite_admissions_total",
				Help:      "Total number of solutions admitted to the elite queue.",
			},
		),
		GammaEscalationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "gamma_escalations_total",
				Help:      "Total number of gamma escalation steps taken during bootstrap.",
			},
		),
		BestDeterministicCost: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "best_deterministic_cost",
				Help:      "Deterministic cost of the current best incumbent.",
			},
		),
		BestStochasticCost: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "best_stochastic_cost",
				Help:      "Stochastic cost of the current best incumbent.",
			},
		),
	}

	defaultMetrics = m
	return m
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
