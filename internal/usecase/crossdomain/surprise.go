package crossdomain

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

const (
	// SurpriseThreshold is the affinity a target entity must exceed to count as a surprise.
	SurpriseThreshold = 0.7

	surpriseUsers   = 3
	surpriseTargets = 5
)

// SurpriseConnections pairs the first user entities with the first target entities whose
// affinity exceeds SurpriseThreshold, strongest first. Weaker pairs are dropped.
func SurpriseConnections(userEntities, targets []domain.Entity) []domain.SurpriseConnection {
	users := userEntities[:min(len(userEntities), surpriseUsers)]
	targets = targets[:min(len(targets), surpriseTargets)]

	out := make([]domain.SurpriseConnection, 0, len(users)*len(targets))
	for _, u := range users {
		for _, t := range targets {
			strength := t.AffinityOrZero()
			if t.Affinity == nil || strength <= SurpriseThreshold {
				continue
			}
			out = append(out, domain.SurpriseConnection{
				FromInterest:       u.Name,
				ToRecommendation:   t,
				ConnectionStrength: strength,
				Explanation: fmt.Sprintf("Your interest in %s connects to %s with %.0f%% cultural affinity",
					u.Name, t.Name, strength*100),
			})
		}
	}

	slices.SortStableFunc(out, func(a, b domain.SurpriseConnection) int {
		return cmp.Compare(b.ConnectionStrength, a.ConnectionStrength)
	})
	return out
}
