// Package affinity scores batches of taste-graph entities.
package affinity

import "github.com/kailas-cloud/tastegraph/internal/domain"

// Average returns the mean affinity of entities, counting a missing affinity as 0.
// An empty batch scores 0.
func Average(entities []domain.Entity) float64 {
	if len(entities) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entities {
		sum += e.AffinityOrZero()
	}
	return sum / float64(len(entities))
}

// Max returns the highest affinity in the batch, or 0 when empty.
func Max(entities []domain.Entity) float64 {
	var best float64
	for _, e := range entities {
		if a := e.AffinityOrZero(); a > best {
			best = a
		}
	}
	return best
}
