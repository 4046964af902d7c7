package component

import (
	"context"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// Resolver maps free-text interests onto taste-graph entities.
type Resolver interface {
	Resolve(ctx context.Context, interests []string, location string) ([]domain.Entity, error)
}

// Querier runs insight queries against the taste graph.
type Querier interface {
	GetInsights(ctx context.Context, q domain.InsightQuery) (domain.InsightResult, error)
}
