package chi

import (
	"context"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	componentuc "github.com/kailas-cloud/tastegraph/internal/usecase/component"
	crossdomainuc "github.com/kailas-cloud/tastegraph/internal/usecase/crossdomain"
	goaluc "github.com/kailas-cloud/tastegraph/internal/usecase/goal"
	healthuc "github.com/kailas-cloud/tastegraph/internal/usecase/health"
)

// GoalEnhancer enhances a goal with recommendations.
type GoalEnhancer interface {
	Enhance(
		ctx context.Context, goal string, profile domain.TasteProfile, pctx domain.ProjectContext,
	) (goaluc.EnhancedGoal, error)
}

// ComponentGenerator generates categorized project components.
type ComponentGenerator interface {
	Generate(
		ctx context.Context, goal string, profile domain.TasteProfile, pctx domain.ProjectContext,
	) componentuc.Components
}

// Discoverer connects interests with an unrelated target domain.
type Discoverer interface {
	Discover(
		ctx context.Context, interests []string, targetDomain string, pctx domain.ProjectContext,
	) (crossdomainuc.Discovery, error)
}

// Gateway exposes the taste graph queries directly.
type Gateway interface {
	SearchEntities(
		ctx context.Context, query string, types []domain.EntityType, opts domain.SearchOptions,
	) ([]domain.Entity, error)
	GetInsights(ctx context.Context, q domain.InsightQuery) (domain.InsightResult, error)
	SearchTags(ctx context.Context, query string, opts domain.TagOptions) ([]domain.Entity, error)
	FindAudiences(ctx context.Context, opts domain.AudienceOptions) ([]domain.Audience, error)
	CompareEntities(
		ctx context.Context, groupA, groupB []string, opts domain.CompareOptions,
	) (domain.Comparison, error)
	GetTrendingEntities(
		ctx context.Context, typ domain.EntityType, opts domain.TrendingOptions,
	) ([]domain.Entity, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
