package crossdomain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	"github.com/kailas-cloud/tastegraph/internal/logger"
	"github.com/kailas-cloud/tastegraph/internal/metrics"
)

// Defaults.
const (
	DefaultLocation = "New York"
	DefaultTake     = 10
)

const operationDiscover = "discover"

// Config tunes the connector.
type Config struct {
	// DefaultLocation is queried when no concrete user entity is available.
	DefaultLocation string
	// Take caps the target-domain query.
	Take int
	// Bridges defaults to SyntheticBridges.
	Bridges BridgeSource
	// Trending defaults to NoTrending.
	Trending TrendingSource
}

// Discovery is the outcome of one cross-domain connection run.
type Discovery struct {
	ID                  string                             `json:"id"`
	TargetDomain        string                             `json:"target_domain"`
	TargetType          domain.EntityType                  `json:"target_type"`
	Tier                Tier                               `json:"tier"`
	UserEntities        []domain.Entity                    `json:"user_entities"`
	Recommendations     []domain.Entity                    `json:"recommendations"`
	SurpriseConnections []domain.SurpriseConnection        `json:"surprise_connections"`
	DomainBridges       domain.Branch[domain.DomainBridge] `json:"domain_bridges"`
	TrendingCrossovers  domain.Branch[domain.Entity]       `json:"trending_crossovers"`
}

// ConnectInput are the already-resolved inputs of a connection run.
type ConnectInput struct {
	Interests    []string
	UserEntities []domain.Entity
	TargetDomain string
	Context      domain.ProjectContext
}

// Service connects the user's interests with an unrelated target domain.
type Service struct {
	resolve  Resolver
	insights Querier
	bridges  BridgeSource
	trending TrendingSource
	location string
	take     int
}

// New creates a connector.
func New(resolve Resolver, insights Querier, cfg Config) *Service {
	s := &Service{
		resolve:  resolve,
		insights: insights,
		bridges:  cfg.Bridges,
		trending: cfg.Trending,
		location: cfg.DefaultLocation,
		take:     cfg.Take,
	}
	if s.bridges == nil {
		s.bridges = SyntheticBridges{}
	}
	if s.trending == nil {
		s.trending = NoTrending{}
	}
	if s.location == "" {
		s.location = DefaultLocation
	}
	if s.take <= 0 {
		s.take = DefaultTake
	}
	return s
}

// Discover resolves the interests and connects them with targetDomain.
// Resolution and target retrieval fail the whole call.
func (s *Service) Discover(
	ctx context.Context, interests []string, targetDomain string, pctx domain.ProjectContext,
) (Discovery, error) {
	entities, err := s.resolve.Resolve(ctx, interests, pctx.UserLocation)
	if err != nil {
		return Discovery{}, fmt.Errorf("resolve interests: %w", err)
	}
	return s.Connect(ctx, ConnectInput{
		Interests:    interests,
		UserEntities: entities,
		TargetDomain: targetDomain,
		Context:      pctx,
	})
}

// Connect queries the target domain through the first matching tier, scores surprise
// connections and asks the bridge and trending sources for their contribution.
// A failing bridge or trending source degrades to a failed branch.
func (s *Service) Connect(ctx context.Context, in ConnectInput) (Discovery, error) {
	id := uuid.NewString()
	ctx, log := logger.WithOperation(ctx, operationDiscover, id)
	target := domain.EntityTypeForDomain(in.TargetDomain)
	tier := SelectTier(in.UserEntities)

	res, err := s.insights.GetInsights(ctx, targetQuery(tier, target, in.UserEntities, s.location, s.take))
	if err != nil {
		return Discovery{}, fmt.Errorf("target domain %s: %w", target, err)
	}
	log.Debug("target domain queried",
		zap.String("target_domain", in.TargetDomain),
		zap.String("tier", string(tier)),
		zap.Int("results", len(res.Results)),
	)

	d := Discovery{
		ID:                  id,
		TargetDomain:        in.TargetDomain,
		TargetType:          target,
		Tier:                tier,
		UserEntities:        in.UserEntities,
		Recommendations:     res.Results,
		SurpriseConnections: SurpriseConnections(in.UserEntities, res.Results),
	}
	if d.UserEntities == nil {
		d.UserEntities = []domain.Entity{}
	}

	bridges, err := s.bridges.Bridges(ctx, BridgeInput{
		Interests:    in.Interests,
		UserEntities: in.UserEntities,
		TargetDomain: in.TargetDomain,
		TargetType:   target,
		Targets:      res.Results,
	})
	if err != nil {
		degraded(log, "bridges", err)
		d.DomainBridges = domain.Failed[domain.DomainBridge](err)
	} else {
		d.DomainBridges = domain.Succeeded(bridges)
	}

	trending, err := s.trending.Crossovers(ctx, target, in.Context)
	if err != nil {
		degraded(log, "trending", err)
		d.TrendingCrossovers = domain.Failed[domain.Entity](err)
	} else {
		d.TrendingCrossovers = domain.Succeeded(trending)
	}

	return d, nil
}

func degraded(log *zap.Logger, branch string, err error) {
	metrics.DegradedBranchesTotal.WithLabelValues(operationDiscover, branch).Inc()
	log.Warn("branch degraded",
		zap.String("branch", branch),
		zap.Error(err),
	)
}
