package crossdomain

import "github.com/kailas-cloud/tastegraph/internal/domain"

// Tier identifies which target-domain query was issued.
type Tier string

// Query tiers, evaluated in declaration order.
const (
	// TierLocationFallback queries by the default location only: there is no concrete entity to signal on.
	TierLocationFallback Tier = "location_fallback"
	// TierTagSignals signals on the resolved tags.
	TierTagSignals Tier = "tag_signals"
	// TierPlain queries the target type without signals.
	TierPlain Tier = "plain"
)

// maxTagSignals caps the tag ids sent with a TierTagSignals query.
const maxTagSignals = 5

// SelectTier picks the target-domain query tier for the resolved user entities.
// The first matching tier wins.
func SelectTier(userEntities []domain.Entity) Tier {
	concrete, tags := domain.SplitByKind(userEntities)
	switch {
	case len(concrete) == 0:
		return TierLocationFallback
	case len(tags) > 0:
		return TierTagSignals
	default:
		return TierPlain
	}
}

// targetQuery builds the insight query issued for tier.
func targetQuery(
	tier Tier, target domain.EntityType, userEntities []domain.Entity, defaultLocation string, take int,
) domain.InsightQuery {
	q := domain.InsightQuery{FilterType: target, Take: take}
	switch tier {
	case TierLocationFallback:
		q.Filters.Location = defaultLocation
	case TierTagSignals:
		_, tags := domain.SplitByKind(userEntities)
		q.Signals.Tags = domain.IDs(tags, maxTagSignals)
		q.Explainability = true
	case TierPlain:
	}
	return q
}
