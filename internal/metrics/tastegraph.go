package metrics

import "github.com/prometheus/client_golang/prometheus"

// Taste graph upstream Prometheus metrics.
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tastegraph",
			Name:      "upstream_requests_total",
			Help:      "Total number of taste graph requests",
		},
		[]string{"endpoint", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tastegraph",
			Name:      "upstream_request_duration_seconds",
			Help:      "Taste graph request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tastegraph",
			Name:      "upstream_errors_total",
			Help:      "Total taste graph errors",
		},
		[]string{"endpoint", "error_type"}, // "http_4xx" / "http_5xx" / "network"
	)

	UpstreamShapeMismatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tastegraph",
			Name:      "upstream_shape_mismatch_total",
			Help:      "Responses whose shape did not match and were coerced to empty results",
		},
		[]string{"endpoint"},
	)

	DegradedBranchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tastegraph",
			Name:      "degraded_branches_total",
			Help:      "Sub-calls that failed and were degraded to an empty branch",
		},
		[]string{"operation", "branch"},
	)
)

var upstreamMetricsRegistered bool

// RegisterUpstreamMetrics registers taste graph upstream metrics. Must be called once from main.
func RegisterUpstreamMetrics() {
	if upstreamMetricsRegistered {
		return
	}
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(UpstreamErrorsTotal)
	prometheus.MustRegister(UpstreamShapeMismatchTotal)
	prometheus.MustRegister(DegradedBranchesTotal)
	upstreamMetricsRegistered = true
}
