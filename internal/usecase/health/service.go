package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component failed.
	Degraded Status = "degraded"
	// Unhealthy indicates the taste graph is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckTasteGraph = "tastegraph"
	CheckNarrator   = "narrator"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	upstream UpstreamPinger
	narrator NarratorChecker
}

// New creates a Service. narrator can be nil.
func New(upstream UpstreamPinger, narrator NarratorChecker) *Service {
	return &Service{upstream: upstream, narrator: narrator}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if s.narrator != nil {
		if err := s.narrator.HealthCheck(ctx); err != nil {
			checks[CheckNarrator] = CheckError
			status = Degraded
		} else {
			checks[CheckNarrator] = CheckOK
		}
	}

	if err := s.upstream.Ping(ctx); err != nil {
		checks[CheckTasteGraph] = CheckError
		status = Unhealthy
	} else {
		checks[CheckTasteGraph] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
