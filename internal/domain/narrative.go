package domain

// NarrativeInput is what a narrator sees of an enhanced goal.
type NarrativeInput struct {
	Goal            string
	Category        string
	Interests       []string
	Recommendations []Entity
	AffinityScore   float64
}
