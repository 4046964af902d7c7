package tastegraph

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation statuses. Degraded marks a call that returned a result with failed branches.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusError    = "error"
)

type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	degraded   *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tastegraph",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tastegraph",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tastegraph",
			Subsystem: "sdk",
			Name:      "degraded_branches_total",
			Help:      "Branches that failed inside an otherwise successful SDK operation.",
		}, []string{"operation", "branch"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.degraded); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("tastegraph: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("tastegraph: register metric: %w", err)
	}
	return nil
}

// observer logs and counts SDK operations. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

// branchFailure is a named sub-call that failed without failing its operation.
type branchFailure struct {
	branch string
	err    error
}

// failures keeps the entries that carry an error, in order.
func failures(branches ...branchFailure) []branchFailure {
	var out []branchFailure
	for _, b := range branches {
		if b.err != nil {
			out = append(out, b)
		}
	}
	return out
}

func (o *observer) observe(op string, start time.Time, err error) {
	o.observeBranches(op, start, err, nil)
}

// observeBranches records op as degraded when it succeeded with failed branches.
func (o *observer) observeBranches(op string, start time.Time, err error, failed []branchFailure) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	status := statusOK
	switch {
	case err != nil:
		status = statusError
	case len(failed) > 0:
		status = statusDegraded
	}

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
		for _, f := range failed {
			o.metrics.degraded.WithLabelValues(op, f.branch).Inc()
		}
	}

	if o.logger == nil {
		return
	}
	switch status {
	case statusError:
		o.logger.Warn("operation failed", "op", op, "duration", dur, "error", err)
	case statusDegraded:
		for _, f := range failed {
			o.logger.Warn("branch degraded", "op", op, "branch", f.branch, "error", f.err)
		}
		o.logger.Info("operation degraded", "op", op, "duration", dur, "failed_branches", len(failed))
	default:
		o.logger.Debug("operation completed", "op", op, "duration", dur)
	}
}
