package backend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"modelrouter/pkg/types"
)

var (
	backendCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelrouter",
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Backend data calls by operation and outcome",
		},
		[]string{"backend", "op", "outcome"},
	)

	backendCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "modelrouter",
			Subsystem: "backend",
			Name:      "call_duration_seconds",
			Help:      "Duration of backend data calls in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		},
		[]string{"backend", "op"},
	)
)

func init() {
	prometheus.MustRegister(backendCallsTotal, backendCallDuration)
}

func observeCall(kind types.BackendKind, op, outcome string, d time.Duration) {
	backendCallsTotal.WithLabelValues(string(kind), op, outcome).Inc()
	backendCallDuration.WithLabelValues(string(kind), op).Observe(d.Seconds())
}
