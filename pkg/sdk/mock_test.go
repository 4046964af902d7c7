package tastegraph

import (
	"context"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	componentuc "github.com/kailas-cloud/tastegraph/internal/usecase/component"
	crossdomainuc "github.com/kailas-cloud/tastegraph/internal/usecase/crossdomain"
	goaluc "github.com/kailas-cloud/tastegraph/internal/usecase/goal"
)

// --- goalUseCase mock ---

type mockGoalUC struct {
	enhanceFn func(ctx context.Context, goal string, p domain.TasteProfile, pctx domain.ProjectContext) (goaluc.EnhancedGoal, error)
}

func (m *mockGoalUC) Enhance(
	ctx context.Context, goal string, p domain.TasteProfile, pctx domain.ProjectContext,
) (goaluc.EnhancedGoal, error) {
	return m.enhanceFn(ctx, goal, p, pctx)
}

// --- componentUseCase mock ---

type mockComponentUC struct {
	generateFn func(ctx context.Context, goal string, p domain.TasteProfile, pctx domain.ProjectContext) componentuc.Components
}

func (m *mockComponentUC) Generate(
	ctx context.Context, goal string, p domain.TasteProfile, pctx domain.ProjectContext,
) componentuc.Components {
	return m.generateFn(ctx, goal, p, pctx)
}

// --- discoveryUseCase mock ---

type mockDiscoveryUC struct {
	discoverFn func(ctx context.Context, interests []string, target string, pctx domain.ProjectContext) (crossdomainuc.Discovery, error)
}

func (m *mockDiscoveryUC) Discover(
	ctx context.Context, interests []string, target string, pctx domain.ProjectContext,
) (crossdomainuc.Discovery, error) {
	return m.discoverFn(ctx, interests, target, pctx)
}

// --- narrator mock ---

type mockNarrator struct {
	fn func(ctx context.Context, in NarrativeInput) (string, error)
}

func (m *mockNarrator) Narrate(ctx context.Context, in NarrativeInput) (string, error) {
	return m.fn(ctx, in)
}
