package agent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var selectMoveTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "takeaway",
		Subsystem: "agent",
		Name:      "select_move_total",
		Help:      "Total move selections requested.",
	},
)
