package insight

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	"github.com/kailas-cloud/tastegraph/internal/logger"
)

// DefaultTake caps the results of each per-type query.
const DefaultTake = 10

// Service aggregates insight results across the entity types relevant to a domain category.
type Service struct {
	insights    Querier
	take        int
	concurrency int
}

// New creates an aggregator. take <= 0 falls back to DefaultTake;
// concurrency <= 0 issues every per-type query at once.
func New(insights Querier, take, concurrency int) *Service {
	if take <= 0 {
		take = DefaultTake
	}
	return &Service{insights: insights, take: take, concurrency: concurrency}
}

// Aggregate runs base once per entity type mapped from category and concatenates the results
// in table order. Per-type ordering is kept; nothing is deduplicated or re-ranked.
// Any failing query fails the whole aggregation.
func (s *Service) Aggregate(ctx context.Context, category string, base domain.InsightQuery) ([]domain.Entity, error) {
	types := domain.EntityTypesForCategory(category)
	batches := make([][]domain.Entity, len(types))

	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, typ := range types {
		g.Go(func() error {
			q := base
			q.FilterType = typ
			if q.Take <= 0 {
				q.Take = s.take
			}
			res, err := s.insights.GetInsights(gctx, q)
			if err != nil {
				return fmt.Errorf("insights for %s: %w", typ, err)
			}
			batches[i] = res.Results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, b := range batches {
		total += len(b)
	}
	out := make([]domain.Entity, 0, total)
	for _, b := range batches {
		out = append(out, b...)
	}

	logger.FromContext(ctx).Debug("insights aggregated",
		zap.String("category", category),
		zap.Int("types", len(types)),
		zap.Int("entities", len(out)),
	)
	return out, nil
}
