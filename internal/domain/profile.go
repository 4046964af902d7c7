package domain

import "strings"

// Preferences carry price and popularity ranges.
type Preferences struct {
	PriceLevel Range `json:"price_level,omitzero"`
	Popularity Range `json:"popularity,omitzero"`
}

// TasteProfile describes a user's stated tastes.
type TasteProfile struct {
	Interests    []string     `json:"interests"`
	Demographics Demographics `json:"demographics,omitzero"`
	Location     Location     `json:"location,omitzero"`
	Preferences  Preferences  `json:"preferences,omitzero"`
}

// Query builds an insight query for filterType from the profile and the entities resolved from its interests.
// Concrete entity ids become entity signals, tag ids become tag signals.
func (p TasteProfile) Query(filterType EntityType, resolved []Entity) InsightQuery {
	concrete, tags := SplitByKind(resolved)
	return InsightQuery{
		FilterType: filterType,
		Signals: Signals{
			Entities:     IDs(concrete, 0),
			Tags:         IDs(tags, 0),
			Demographics: p.Demographics,
			Location:     p.Location,
		},
		Filters: Filters{
			PriceLevel: p.Preferences.PriceLevel,
			Popularity: p.Preferences.Popularity,
		},
	}
}

// Budget levels understood by ProjectContext.
const (
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
)

// ProjectContext is the immutable configuration of a goal-enhancement request.
type ProjectContext struct {
	ProjectType  string `json:"project_type"`
	GoalCategory string `json:"goal_category"`
	UserLocation string `json:"user_location,omitempty"`
	Timeframe    string `json:"timeframe,omitempty"`
	Budget       string `json:"budget,omitempty"`
}

// PriceRange maps the budget level onto a price-level filter. Unknown budgets yield an empty range.
func (c ProjectContext) PriceRange() Range {
	switch strings.ToLower(c.Budget) {
	case BudgetLow:
		return NewRange(1, 2)
	case BudgetMedium:
		return NewRange(2, 3)
	case BudgetHigh:
		return NewRange(3, 4)
	default:
		return Range{}
	}
}
