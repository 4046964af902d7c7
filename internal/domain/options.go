package domain

// SearchOptions bound an entity search.
type SearchOptions struct {
	Take int
	Page int
	// Location is attached only when it is a "lat,lon" coordinate pair.
	Location string
}

// TagOptions bound a tag search.
type TagOptions struct {
	Types []string
	Take  int
	Page  int
}

// AudienceOptions bound an audience lookup.
type AudienceOptions struct {
	Types []string
	Take  int
	Page  int
}

// CompareOptions bound an entity-group comparison.
type CompareOptions struct {
	FilterType EntityType
	Take       int
}

// TrendingOptions bound a trending lookup.
type TrendingOptions struct {
	Location string
	Take     int
	Page     int
}
