package tastegraph

import (
	"github.com/goccy/go-json"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// searchResponse is the /search payload: a flat list of items carrying a types array.
type searchResponse struct {
	Results []searchItem `json:"results"`
}

type searchItem struct {
	EntityID   string          `json:"entity_id"`
	Name       string          `json:"name"`
	Types      []string        `json:"types"`
	Affinity   *float64        `json:"affinity"`
	Properties json.RawMessage `json:"properties"`
}

// envelope is shared by the /v2 endpoints: results nest one level under a named list.
type envelope struct {
	Results    json.RawMessage `json:"results"`
	Query      queryMeta       `json:"query"`
	Pagination *paginationDTO  `json:"pagination"`
}

type queryMeta struct {
	Explainability map[string]any `json:"explainability"`
	Locality       map[string]any `json:"locality"`
}

type paginationDTO struct {
	Page  int `json:"page"`
	Take  int `json:"take"`
	Total int `json:"total"`
}

type nestedResults struct {
	Entities  []insightItem  `json:"entities"`
	Tags      []tagItem      `json:"tags"`
	Audiences []audienceItem `json:"audiences"`
}

type insightItem struct {
	EntityID   string          `json:"entity_id"`
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Subtype    string          `json:"subtype"`
	Type       string          `json:"type"`
	Affinity   *float64        `json:"affinity"`
	Query      *itemQuery      `json:"query"`
	Properties json.RawMessage `json:"properties"`
}

type itemQuery struct {
	Affinity *float64 `json:"affinity"`
}

type tagItem struct {
	ID      string     `json:"id"`
	TagID   string     `json:"tag_id"`
	Name    string     `json:"name"`
	Type    string     `json:"type"`
	Subtype string     `json:"subtype"`
	Query   *itemQuery `json:"query"`
}

type audienceItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	EntityType string `json:"entity_type"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (it searchItem) toEntity() domain.Entity {
	var typ string
	if len(it.Types) > 0 {
		typ = it.Types[0]
	}
	return domain.NewEntity(it.EntityID, it.Name, typ, it.Affinity, decodeProperties(it.Properties))
}

func (it insightItem) toEntity() domain.Entity {
	affinity := it.Affinity
	if it.Query != nil && it.Query.Affinity != nil {
		affinity = it.Query.Affinity
	}
	return domain.NewEntity(
		firstNonEmpty(it.EntityID, it.ID),
		it.Name,
		firstNonEmpty(it.Subtype, it.Type),
		affinity,
		decodeProperties(it.Properties),
	)
}

func (it tagItem) toEntity() domain.Entity {
	var affinity *float64
	if it.Query != nil {
		affinity = it.Query.Affinity
	}
	typ := firstNonEmpty(it.Subtype, it.Type)
	if typ == "" {
		typ = domain.TagTypePrefix
	}
	return domain.NewEntity(firstNonEmpty(it.TagID, it.ID), it.Name, typ, affinity, domain.Properties{})
}

// nested decodes the results field of a /v2 envelope. ok is false when the shape does not match.
func (e envelope) nested() (nestedResults, bool) {
	var n nestedResults
	if len(e.Results) == 0 {
		return n, false
	}
	if err := json.Unmarshal(e.Results, &n); err != nil {
		return nestedResults{}, false
	}
	return n, true
}

func (e envelope) meta() (domain.QueryMeta, *domain.Pagination) {
	m := domain.QueryMeta{
		Explainability: e.Query.Explainability,
		Locality:       e.Query.Locality,
	}
	if e.Pagination == nil {
		return m, nil
	}
	return m, &domain.Pagination{Page: e.Pagination.Page, Take: e.Pagination.Take, Total: e.Pagination.Total}
}

// decodeProperties reads each known key into its typed field independently.
// Unknown keys, and known keys whose value has an unexpected shape, are kept in Extra.
func decodeProperties(raw json.RawMessage) domain.Properties {
	if len(raw) == 0 {
		return domain.Properties{}
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return domain.Properties{}
	}

	var props domain.Properties
	for k, v := range all {
		if decodeKnownProperty(&props, k, v) {
			continue
		}
		var val any
		if json.Unmarshal(v, &val) != nil {
			continue
		}
		if props.Extra == nil {
			props.Extra = make(map[string]any)
		}
		props.Extra[k] = val
	}
	return props
}

// decodeKnownProperty reports false for unknown keys and for values it cannot read.
func decodeKnownProperty(p *domain.Properties, key string, raw json.RawMessage) bool {
	switch key {
	case "description":
		return decodeInto(raw, &p.Description)
	case "address":
		return decodeInto(raw, &p.Address)
	case "website":
		return decodeInto(raw, &p.Website)
	case "image":
		url, ok := decodeImageURL(raw)
		p.ImageURL = url
		return ok
	case "price_level":
		return decodeInto(raw, &p.PriceLevel)
	case "popularity":
		return decodeInto(raw, &p.Popularity)
	case "business_rating":
		return decodeInto(raw, &p.Rating)
	case "keywords":
		kw, ok := decodeKeywords(raw)
		p.Keywords = kw
		return ok
	}
	return false
}

// decodeInto leaves dst untouched when raw does not fit its type.
func decodeInto[T any](raw json.RawMessage, dst *T) bool {
	var v T
	if json.Unmarshal(raw, &v) != nil {
		return false
	}
	*dst = v
	return true
}

// decodeImageURL accepts either a bare URL or an {"url": ...} object.
func decodeImageURL(raw json.RawMessage) (string, bool) {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s, true
	}
	var obj struct {
		URL string `json:"url"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.URL, true
	}
	return "", false
}

// decodeKeywords accepts a list of strings or a list of {"name": ...} objects.
func decodeKeywords(raw json.RawMessage) ([]string, bool) {
	var plain []string
	if json.Unmarshal(raw, &plain) == nil {
		return plain, true
	}
	var named []struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &named) != nil {
		return nil, false
	}
	out := make([]string, 0, len(named))
	for _, n := range named {
		if n.Name != "" {
			out = append(out, n.Name)
		}
	}
	return out, true
}
