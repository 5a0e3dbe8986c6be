package canonical

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "takeaway"
	subsystem        = "canonical"
)

var (
	encodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "encode_duration_seconds",
			Help:      "Time taken to canonically encode a hypergraph",
			Buckets:   prometheus.DefBuckets,
		},
	)

	refineRounds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "refine_rounds",
			Help:      "Color refinement rounds until a stable partition",
			Buckets:   prometheus.LinearBuckets(0, 1, 16),
		},
	)

	isomorphismCheckTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "isomorphism_check_total",
			Help:      "Total number of exact isomorphism confirmations",
		},
		[]string{"status"}, // match, mismatch
	)
)
