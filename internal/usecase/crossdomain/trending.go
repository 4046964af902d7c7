package crossdomain

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// NoTrending never reports trending crossovers.
type NoTrending struct{}

// Crossovers always returns an empty list.
func (NoTrending) Crossovers(context.Context, domain.EntityType, domain.ProjectContext) ([]domain.Entity, error) {
	return []domain.Entity{}, nil
}

// UpstreamTrending reads trending entities of the target type from the taste graph.
type UpstreamTrending struct {
	trending TrendingLister
	take     int
}

// NewUpstreamTrending creates a trending source backed by the taste graph.
func NewUpstreamTrending(trending TrendingLister, take int) *UpstreamTrending {
	return &UpstreamTrending{trending: trending, take: take}
}

// Crossovers lists trending target entities near the project's location.
func (s *UpstreamTrending) Crossovers(
	ctx context.Context, target domain.EntityType, pctx domain.ProjectContext,
) ([]domain.Entity, error) {
	out, err := s.trending.GetTrendingEntities(ctx, target, domain.TrendingOptions{
		Location: pctx.UserLocation,
		Take:     s.take,
	})
	if err != nil {
		return nil, fmt.Errorf("trending %s: %w", target, err)
	}
	return out, nil
}
