package health

import "github.com/prometheus/client_golang/prometheus"

var (
	probesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelrouter",
			Subsystem: "health",
			Name:      "probes_total",
			Help:      "Health probes executed by model and result",
		},
		[]string{"model", "result"},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelrouter",
			Subsystem: "health",
			Name:      "cache_hits_total",
			Help:      "Health lookups answered from a fresh cached verdict",
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(probesTotal, cacheHits)
}
