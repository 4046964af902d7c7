package goal

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	"github.com/kailas-cloud/tastegraph/internal/domain/affinity"
	"github.com/kailas-cloud/tastegraph/internal/logger"
)

// maxEntitySignals caps the resolved entity ids sent as signals.
const maxEntitySignals = 5

// Project is one synthesized suggestion: the recommendations of a single entity type.
type Project struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	EntityType domain.EntityType `json:"entity_type"`
	Entities   []domain.Entity   `json:"entities"`
	Score      float64           `json:"score"`
}

// EnhancedGoal is a goal enriched with taste-graph recommendations.
type EnhancedGoal struct {
	ID              string          `json:"id"`
	Goal            string          `json:"goal"`
	Category        string          `json:"category"`
	UserEntities    []domain.Entity `json:"user_entities"`
	Recommendations []domain.Entity `json:"recommendations"`
	Projects        []Project       `json:"projects"`
	AffinityScore   float64         `json:"affinity_score"`
	Insights        []string        `json:"insights"`
	Narrative       string          `json:"narrative,omitempty"`
}

// Service enhances goals with recommendations.
type Service struct {
	resolve   Resolver
	aggregate Aggregator
	narrator  Narrator
}

// New creates a goal enhancer. narrator can be nil.
func New(resolve Resolver, aggregate Aggregator, narrator Narrator) *Service {
	return &Service{resolve: resolve, aggregate: aggregate, narrator: narrator}
}

// Enhance resolves the profile's interests, aggregates recommendations for the goal category
// and groups them into scored projects. Any failing step fails the whole call.
func (s *Service) Enhance(
	ctx context.Context, goal string, profile domain.TasteProfile, pctx domain.ProjectContext,
) (EnhancedGoal, error) {
	location := pctx.UserLocation
	if location == "" {
		location = profile.Location.Query
	}

	id := uuid.NewString()
	ctx, log := logger.WithOperation(ctx, "enhance_goal", id)

	entities, err := s.resolve.Resolve(ctx, profile.Interests, location)
	if err != nil {
		return EnhancedGoal{}, fmt.Errorf("resolve interests: %w", err)
	}

	concrete, _ := domain.SplitByKind(entities)
	base := domain.InsightQuery{
		Signals: domain.Signals{
			Entities: domain.IDs(concrete, maxEntitySignals),
			Location: domain.Location{Query: location},
		},
	}
	recs, err := s.aggregate.Aggregate(ctx, pctx.GoalCategory, base)
	if err != nil {
		return EnhancedGoal{}, fmt.Errorf("aggregate insights: %w", err)
	}

	out := EnhancedGoal{
		ID:              id,
		Goal:            goal,
		Category:        pctx.GoalCategory,
		UserEntities:    entities,
		Recommendations: recs,
		Projects:        projects(goal, recs),
		AffinityScore:   affinity.Average(recs),
	}
	out.Insights = insights(out)

	if s.narrator != nil {
		out.Narrative, err = s.narrator.Narrate(ctx, domain.NarrativeInput{
			Goal:            goal,
			Category:        pctx.GoalCategory,
			Interests:       profile.Interests,
			Recommendations: recs,
			AffinityScore:   out.AffinityScore,
		})
		if err != nil {
			return EnhancedGoal{}, fmt.Errorf("narrate: %w", err)
		}
	}

	log.Info("goal enhanced",
		zap.String("category", out.Category),
		zap.Int("recommendations", len(recs)),
		zap.Int("projects", len(out.Projects)),
	)
	return out, nil
}

// projects groups recommendations by entity type in first-seen order.
func projects(goal string, recs []domain.Entity) []Project {
	out := []Project{}
	index := make(map[string]int)
	for _, e := range recs {
		i, ok := index[e.Type]
		if !ok {
			i = len(out)
			index[e.Type] = i
			out = append(out, Project{
				ID:         uuid.NewString(),
				Title:      fmt.Sprintf("%s picks for %s", typeLabel(e.Type), goal),
				EntityType: domain.EntityType(e.Type),
			})
		}
		out[i].Entities = append(out[i].Entities, e)
	}
	for i := range out {
		out[i].Score = affinity.Average(out[i].Entities)
	}
	return out
}

func insights(g EnhancedGoal) []string {
	out := []string{
		fmt.Sprintf("Found %d recommendations across %d entity types for your %s goal",
			len(g.Recommendations), len(g.Projects), labelOr(g.Category, "general")),
	}
	if len(g.UserEntities) > 0 {
		out = append(out, fmt.Sprintf("Your interests matched %d taste-graph entities", len(g.UserEntities)))
	}
	if top, ok := strongest(g.Recommendations); ok {
		out = append(out, fmt.Sprintf("Strongest match: %s (%.0f%% affinity)", top.Name, top.AffinityOrZero()*100))
	}
	return out
}

func strongest(entities []domain.Entity) (domain.Entity, bool) {
	var best domain.Entity
	found := false
	for _, e := range entities {
		if e.Affinity == nil {
			continue
		}
		if !found || *e.Affinity > *best.Affinity {
			best, found = e, true
		}
	}
	return best, found
}

// typeLabel turns "urn:entity:tv_show" into "Tv show".
func typeLabel(typ string) string {
	label := typ[strings.LastIndex(typ, ":")+1:]
	label = strings.ReplaceAll(label, "_", " ")
	if label == "" {
		return "Other"
	}
	r, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(r)) + label[size:]
}

func labelOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
