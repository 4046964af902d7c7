package tastegraph

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	gateway "github.com/kailas-cloud/tastegraph/internal/transport/tastegraph"
	componentuc "github.com/kailas-cloud/tastegraph/internal/usecase/component"
	crossdomainuc "github.com/kailas-cloud/tastegraph/internal/usecase/crossdomain"
	goaluc "github.com/kailas-cloud/tastegraph/internal/usecase/goal"
	healthuc "github.com/kailas-cloud/tastegraph/internal/usecase/health"
	insightuc "github.com/kailas-cloud/tastegraph/internal/usecase/insight"
	resolveuc "github.com/kailas-cloud/tastegraph/internal/usecase/resolve"
)

// Internal interfaces, replaced by mocks in tests.
type goalUseCase interface {
	Enhance(ctx context.Context, goal string, profile domain.TasteProfile, pctx domain.ProjectContext) (goaluc.EnhancedGoal, error)
}

type componentUseCase interface {
	Generate(ctx context.Context, goal string, profile domain.TasteProfile, pctx domain.ProjectContext) componentuc.Components
}

type discoveryUseCase interface {
	Discover(ctx context.Context, interests []string, targetDomain string, pctx domain.ProjectContext) (crossdomainuc.Discovery, error)
}

type searchGateway interface {
	SearchEntities(ctx context.Context, query string, types []domain.EntityType, opts domain.SearchOptions) ([]domain.Entity, error)
	GetInsights(ctx context.Context, q domain.InsightQuery) (domain.InsightResult, error)
}

// Client is the tastegraph SDK entry point. It is safe for concurrent use.
type Client struct {
	goalSvc      goalUseCase
	componentSvc componentUseCase
	discoverySvc discoveryUseCase
	gateway      searchGateway
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client. No request is made until the first call.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.baseURL == "" {
		return nil, errors.New("tastegraph: base URL required (use WithBaseURL)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(cfg, obs), nil
}

func wireClient(cfg *clientConfig, obs *observer) *Client {
	gw := gateway.New(&gateway.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     cfg.apiKey,
		HTTPClient: cfg.httpClient,
		Logger:     zap.NewNop(),
	})

	// Pass a nil interface (not a typed nil pointer) when no narrator is set.
	var narrator goaluc.Narrator
	if cfg.narrator != nil {
		narrator = &narratorAdapter{inner: cfg.narrator}
	}

	var bridges crossdomainuc.BridgeSource = crossdomainuc.SyntheticBridges{}
	if cfg.compareBridges {
		bridges = crossdomainuc.NewCompareBridgeSource(gw, cfg.insightTake)
	}
	var trending crossdomainuc.TrendingSource = crossdomainuc.NoTrending{}
	if cfg.trendingTake > 0 {
		trending = crossdomainuc.NewUpstreamTrending(gw, cfg.trendingTake)
	}

	resolveSvc := resolveuc.New(gw, cfg.resolveTake)
	insightSvc := insightuc.New(gw, cfg.insightTake, cfg.concurrency)

	return &Client{
		goalSvc:      goaluc.New(resolveSvc, insightSvc, narrator),
		componentSvc: componentuc.New(resolveSvc, gw, cfg.insightTake),
		discoverySvc: crossdomainuc.New(resolveSvc, gw, crossdomainuc.Config{
			DefaultLocation: cfg.defaultLocation,
			Take:            cfg.insightTake,
			Bridges:         bridges,
			Trending:        trending,
		}),
		gateway:   gw,
		healthSvc: healthuc.New(gw, nil),
		obs:       obs,
	}
}

// EnhanceGoal resolves the profile interests and builds recommendations, project suggestions
// and an affinity score for goal. Any failed taste graph call fails the whole call.
func (c *Client) EnhanceGoal(
	ctx context.Context, goal string, profile TasteProfile, pctx ProjectContext,
) (_ EnhancedGoal, err error) {
	start := time.Now()
	defer func() { c.obs.observe("enhance_goal", start, err) }()

	return c.goalSvc.Enhance(ctx, goal, profile, pctx)
}

// GenerateComponents suggests venues, content, tools and communities for goal.
// It never fails: a failed category is reported through its branch status.
func (c *Client) GenerateComponents(
	ctx context.Context, goal string, profile TasteProfile, pctx ProjectContext,
) Components {
	start := time.Now()
	out := c.componentSvc.Generate(ctx, goal, profile, pctx)
	c.obs.observeBranches("generate_components", start, nil, failures(
		branchFailure{"resolution", out.Resolution.Err()},
		branchFailure{"venues", out.Venues.Err()},
		branchFailure{"content", out.Content.Err()},
		branchFailure{"tools", out.Tools.Err()},
		branchFailure{"communities", out.Communities.Err()},
	))
	return out
}

// Discover connects interests with recommendations from an unrelated target domain.
func (c *Client) Discover(
	ctx context.Context, interests []string, targetDomain string, pctx ProjectContext,
) (d Discovery, err error) {
	start := time.Now()
	defer func() {
		c.obs.observeBranches("discover", start, err, failures(
			branchFailure{"bridges", d.DomainBridges.Err()},
			branchFailure{"trending", d.TrendingCrossovers.Err()},
		))
	}()

	return c.discoverySvc.Discover(ctx, interests, targetDomain, pctx)
}

// SearchEntities resolves free text into taste graph entities.
func (c *Client) SearchEntities(
	ctx context.Context, query string, types []EntityType, opts SearchOptions,
) (_ []Entity, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_entities", start, err) }()

	return c.gateway.SearchEntities(ctx, query, types, opts)
}

// GetInsights runs a raw insight query.
func (c *Client) GetInsights(ctx context.Context, q InsightQuery) (_ InsightResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_insights", start, err) }()

	return c.gateway.GetInsights(ctx, q)
}
