package router

import "github.com/prometheus/client_golang/prometheus"

var routeDecisions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "modelrouter",
		Subsystem: "router",
		Name:      "decisions_total",
		Help:      "Routing decisions by task, chosen model and whether the fallback was used",
	},
	[]string{"task", "model", "fallback"},
)

func init() {
	prometheus.MustRegister(routeDecisions)
}
