package hypergraph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "takeaway"
	subsystem        = "hypergraph"
)

var (
	applyMoveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "apply_move_total",
			Help:      "Total number of move applications",
		},
		[]string{"kind", "status"},
	)

	applyMoveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "apply_move_duration_seconds",
			Help:      "Time taken to apply a move",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)
