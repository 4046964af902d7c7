package domain

// Range is an optional {min, max} bound. Nil ends are unbounded.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// IsZero reports whether neither end is set.
func (r Range) IsZero() bool { return r.Min == nil && r.Max == nil }

// NewRange builds a closed range.
func NewRange(minVal, maxVal float64) Range {
	return Range{Min: &minVal, Max: &maxVal}
}

// Demographics is the demographic part of a signal.
type Demographics struct {
	Age    string `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// IsZero reports whether no demographic is set.
func (d Demographics) IsZero() bool { return d.Age == "" && d.Gender == "" }

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Location is either a free-text place query or a coordinate pair.
type Location struct {
	Query       string       `json:"query,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// IsZero reports whether the location is unset.
func (l Location) IsZero() bool { return l.Query == "" && l.Coordinates == nil }

// Signals express what the user likes.
type Signals struct {
	Entities     []string     `json:"entities,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	Demographics Demographics `json:"demographics,omitzero"`
	Location     Location     `json:"location,omitzero"`
}

// IsZero reports whether no signal is set.
func (s Signals) IsZero() bool {
	return len(s.Entities) == 0 && len(s.Tags) == 0 && s.Demographics.IsZero() && s.Location.IsZero()
}

// Filters narrow which entities may appear in results.
type Filters struct {
	Location   string   `json:"location,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	PriceLevel Range    `json:"price_level,omitzero"`
	Popularity Range    `json:"popularity,omitzero"`
	Rating     Range    `json:"rating,omitzero"`
}

// InsightQuery is a signal/filter-bearing recommendation query for one entity type.
type InsightQuery struct {
	FilterType     EntityType `json:"filter_type"`
	Signals        Signals    `json:"signals,omitzero"`
	Filters        Filters    `json:"filters,omitzero"`
	Take           int        `json:"take,omitempty"`
	Page           int        `json:"page,omitempty"`
	Explainability bool       `json:"explainability,omitempty"`
}

// QueryMeta echoes query-level information returned alongside results.
type QueryMeta struct {
	Explainability map[string]any `json:"explainability,omitempty"`
	Locality       map[string]any `json:"locality,omitempty"`
}

// Pagination describes the page of an insight result.
type Pagination struct {
	Page  int `json:"page"`
	Take  int `json:"take"`
	Total int `json:"total,omitempty"`
}

// InsightResult is the normalized response of an insight query.
type InsightResult struct {
	Results    []Entity    `json:"results"`
	Query      QueryMeta   `json:"query"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
