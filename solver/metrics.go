package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "takeaway"
	metricsSubsystem = "solver"
)

var (
	nodesExpandedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "nodes_expanded_total",
			Help:      "Total positions expanded by the search.",
		},
	)
	cacheLookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "cache_lookup_total",
			Help:      "Memo cache lookups by result.",
		},
		[]string{"result"},
	)
	cacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "cache_entries",
			Help:      "Current number of memoized positions.",
		},
	)
	evaluateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "evaluate_total",
			Help:      "Completed evaluations by status.",
		},
		[]string{"status"},
	)
	evaluateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "evaluate_duration_seconds",
			Help:      "Wall-clock duration of evaluations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		},
	)
)
