package crossdomain

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

// BridgeSource derives domain bridges between the user's interests and a target domain.
type BridgeSource interface {
	Bridges(ctx context.Context, in BridgeInput) ([]domain.DomainBridge, error)
}

// TrendingSource lists trending entities that cross over into the target domain.
type TrendingSource interface {
	Crossovers(ctx context.Context, target domain.EntityType, pctx domain.ProjectContext) ([]domain.Entity, error)
}

// Comparer compares two groups of taste-graph entities.
type Comparer interface {
	CompareEntities(ctx context.Context, groupA, groupB []string, opts domain.CompareOptions) (domain.Comparison, error)
}

// TrendingLister lists trending taste-graph entities of one type.
type TrendingLister interface {
	GetTrendingEntities(ctx context.Context, typ domain.EntityType, opts domain.TrendingOptions) ([]domain.Entity, error)
}
