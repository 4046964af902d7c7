package resolve

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	"github.com/kailas-cloud/tastegraph/internal/logger"
)

// DefaultTake caps the results of a single interest search.
const DefaultTake = 5

// Service maps free-text interests onto taste-graph entities.
type Service struct {
	search Searcher
	take   int
}

// New creates a resolver. take <= 0 falls back to DefaultTake.
func New(search Searcher, take int) *Service {
	if take <= 0 {
		take = DefaultTake
	}
	return &Service{search: search, take: take}
}

// Resolve issues one search per interest, in order, and concatenates the results.
// Entities found for several interests appear once per interest.
// The first failing search aborts the whole resolution.
func (s *Service) Resolve(ctx context.Context, interests []string, location string) ([]domain.Entity, error) {
	out := make([]domain.Entity, 0, len(interests)*s.take)
	for _, interest := range interests {
		found, err := s.search.SearchEntities(ctx, interest, nil, domain.SearchOptions{
			Take:     s.take,
			Location: location,
		})
		if err != nil {
			return nil, fmt.Errorf("resolve interest %q: %w", interest, err)
		}
		out = append(out, found...)
	}

	logger.FromContext(ctx).Debug("interests resolved",
		zap.Int("interests", len(interests)),
		zap.Int("entities", len(out)),
	)
	return out, nil
}
