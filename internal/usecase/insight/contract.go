package insight

import (
	"context"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// Querier runs insight queries against the taste graph.
type Querier interface {
	GetInsights(ctx context.Context, q domain.InsightQuery) (domain.InsightResult, error)
}
