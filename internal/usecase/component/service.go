package component

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	"github.com/kailas-cloud/tastegraph/internal/logger"
	"github.com/kailas-cloud/tastegraph/internal/metrics"
)

// DefaultTake caps each category query.
const DefaultTake = 10

const operationComponents = "components"

// Component categories and the entity type queried for each.
const (
	CategoryVenues      = "venues"
	CategoryContent     = "content"
	CategoryTools       = "tools"
	CategoryCommunities = "communities"
)

var categories = []struct {
	name string
	typ  domain.EntityType
}{
	{CategoryVenues, domain.EntityPlace},
	{CategoryContent, domain.EntityBook},
	{CategoryTools, domain.EntityBrand},
	{CategoryCommunities, domain.EntityPodcast},
}

// Components is always structurally complete: every category is present,
// a failed upstream call shows up as a failed branch.
type Components struct {
	ID          string                       `json:"id"`
	Goal        string                       `json:"goal"`
	Venues      domain.Branch[domain.Entity] `json:"venues"`
	Content     domain.Branch[domain.Entity] `json:"content"`
	Tools       domain.Branch[domain.Entity] `json:"tools"`
	Communities domain.Branch[domain.Entity] `json:"communities"`
	Resolution  domain.Branch[domain.Entity] `json:"resolution"`
}

// Service generates categorized project components.
type Service struct {
	resolve  Resolver
	insights Querier
	take     int
}

// New creates a component generator. take <= 0 falls back to DefaultTake.
func New(resolve Resolver, insights Querier, take int) *Service {
	if take <= 0 {
		take = DefaultTake
	}
	return &Service{resolve: resolve, insights: insights, take: take}
}

// Generate fetches the four component categories concurrently. It never fails:
// a failed resolution leaves the category queries unsigned, a failed category query
// degrades that category only.
func (s *Service) Generate(
	ctx context.Context, goal string, profile domain.TasteProfile, pctx domain.ProjectContext,
) Components {
	out := Components{ID: uuid.NewString(), Goal: goal}
	ctx, log := logger.WithOperation(ctx, operationComponents, out.ID)

	if profile.Location.IsZero() && pctx.UserLocation != "" {
		profile.Location = domain.Location{Query: pctx.UserLocation}
	}

	resolved, err := s.resolve.Resolve(ctx, profile.Interests, pctx.UserLocation)
	if err != nil {
		s.degraded(log, "resolution", err)
		out.Resolution = domain.Failed[domain.Entity](err)
		resolved = nil
	} else {
		out.Resolution = domain.Succeeded(resolved)
	}

	branches := make([]domain.Branch[domain.Entity], len(categories))
	var g errgroup.Group
	for i, c := range categories {
		g.Go(func() error {
			q := profile.Query(c.typ, resolved)
			q.Take = s.take
			if price := pctx.PriceRange(); !price.IsZero() {
				q.Filters.PriceLevel = price
			}
			res, err := s.insights.GetInsights(ctx, q)
			if err != nil {
				s.degraded(log, c.name, err)
				branches[i] = domain.Failed[domain.Entity](err)
				return nil
			}
			branches[i] = domain.Succeeded(res.Results)
			return nil
		})
	}
	_ = g.Wait()

	out.Venues, out.Content, out.Tools, out.Communities = branches[0], branches[1], branches[2], branches[3]

	log.Info("components generated",
		zap.String("venues", string(out.Venues.Status())),
		zap.String("content", string(out.Content.Status())),
		zap.String("tools", string(out.Tools.Status())),
		zap.String("communities", string(out.Communities.Status())),
	)
	return out
}

func (s *Service) degraded(log *zap.Logger, branch string, err error) {
	metrics.DegradedBranchesTotal.WithLabelValues(operationComponents, branch).Inc()
	log.Warn("branch degraded",
		zap.String("branch", branch),
		zap.Error(err),
	)
}
