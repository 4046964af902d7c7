package resolve

import (
	"context"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// Searcher looks up taste-graph entities by free text.
type Searcher interface {
	SearchEntities(
		ctx context.Context, query string, types []domain.EntityType, opts domain.SearchOptions,
	) ([]domain.Entity, error)
}
