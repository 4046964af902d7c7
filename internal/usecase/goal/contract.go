package goal

import (
	"context"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// Resolver maps free-text interests onto taste-graph entities.
type Resolver interface {
	Resolve(ctx context.Context, interests []string, location string) ([]domain.Entity, error)
}

// Aggregator runs a query once per entity type of a goal category.
type Aggregator interface {
	Aggregate(ctx context.Context, category string, base domain.InsightQuery) ([]domain.Entity, error)
}

// Narrator writes a short narrative for an enhanced goal.
type Narrator interface {
	Narrate(ctx context.Context, in domain.NarrativeInput) (string, error)
}
