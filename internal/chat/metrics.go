package chat

import "github.com/prometheus/client_golang/prometheus"

var (
	chatCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelrouter",
			Subsystem: "chat",
			Name:      "calls_total",
			Help:      "Chat invocations by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	chatLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "modelrouter",
			Subsystem: "chat",
			Name:      "latency_seconds",
			Help:      "End-to-end chat latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(chatCalls, chatLatency)
}
