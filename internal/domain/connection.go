package domain

// SurpriseConnection pairs a user interest with a high-affinity entity from another domain.
type SurpriseConnection struct {
	FromInterest       string  `json:"from_interest"`
	ToRecommendation   Entity  `json:"to_recommendation"`
	ConnectionStrength float64 `json:"connection_strength"`
	Explanation        string  `json:"explanation"`
}

// DomainBridge links the user's interest domain with a target domain.
type DomainBridge struct {
	Domain1        string   `json:"domain1"`
	Domain2        string   `json:"domain2"`
	BridgeEntities []Entity `json:"bridge_entities"`
	Insights       []string `json:"insights"`
}

// UserInterestsDomain is the domain label of the user's own interests.
const UserInterestsDomain = "user_interests"

// Audience is a taste-graph audience segment.
type Audience struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Comparison is the normalized result of comparing two entity groups.
type Comparison struct {
	Shared []Entity `json:"shared"`
}
