package metrics

import "github.com/prometheus/client_golang/prometheus"

// Narrator Prometheus metrics.
var (
	NarratorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tastegraph",
			Name:      "narrator_requests_total",
			Help:      "Total number of narrator completion requests",
		},
		[]string{"provider", "model", "status"},
	)

	NarratorRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tastegraph",
			Name:      "narrator_request_duration_seconds",
			Help:      "Narrator completion request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	NarratorTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tastegraph",
			Name:      "narrator_tokens_total",
			Help:      "Total tokens consumed by the narrator",
		},
		[]string{"provider", "model", "type"}, // "prompt" / "completion"
	)
)

var narratorMetricsRegistered bool

// RegisterNarratorMetrics registers narrator metrics. Called from main only when a narrator is configured.
func RegisterNarratorMetrics() {
	if narratorMetricsRegistered {
		return
	}
	prometheus.MustRegister(NarratorRequestsTotal)
	prometheus.MustRegister(NarratorRequestDuration)
	prometheus.MustRegister(NarratorTokensTotal)
	narratorMetricsRegistered = true
}
