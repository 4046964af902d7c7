package health

import "context"

// UpstreamPinger checks taste graph reachability.
type UpstreamPinger interface {
	Ping(ctx context.Context) error
}

// NarratorChecker checks LLM provider availability.
type NarratorChecker interface {
	HealthCheck(ctx context.Context) error
}
