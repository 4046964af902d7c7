package domain

import "strings"

// EntityType is a namespaced taste-graph entity type identifier.
type EntityType string

// Entity types understood by the taste graph. Values are sent on the wire verbatim.
const (
	EntityPlace       EntityType = "urn:entity:place"
	EntityBrand       EntityType = "urn:entity:brand"
	EntityBook        EntityType = "urn:entity:book"
	EntityPodcast     EntityType = "urn:entity:podcast"
	EntityArtist      EntityType = "urn:entity:artist"
	EntityDestination EntityType = "urn:entity:destination"
	EntityMovie       EntityType = "urn:entity:movie"
	EntityPerson      EntityType = "urn:entity:person"
	EntityTVShow      EntityType = "urn:entity:tv_show"
	EntityVideoGame   EntityType = "urn:entity:videogame"
)

// TagTypePrefix is the namespace prefix shared by every tag type.
const TagTypePrefix = "urn:tag"

// Kind separates concrete entities from tags.
type Kind uint8

const (
	// KindConcrete is a real catalogue item (a venue, a book, an artist).
	KindConcrete Kind = iota
	// KindTag is a taste-graph tag (genre, keyword, style).
	KindTag
)

func (k Kind) String() string {
	if k == KindTag {
		return "tag"
	}
	return "concrete"
}

// ClassifyType reports the kind implied by a raw type string.
func ClassifyType(typ string) Kind {
	if strings.HasPrefix(typ, TagTypePrefix) {
		return KindTag
	}
	return KindConcrete
}

// Entity is a taste-graph item. Values are only meaningful within the response that produced them.
type Entity struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Kind       Kind       `json:"-"`
	Affinity   *float64   `json:"affinity,omitempty"`
	Properties Properties `json:"properties,omitzero"`
}

// NewEntity builds an entity, classifying its kind once and clamping affinity into [0,1].
func NewEntity(id, name, typ string, affinity *float64, props Properties) Entity {
	return Entity{
		ID:         id,
		Name:       name,
		Type:       typ,
		Kind:       ClassifyType(typ),
		Affinity:   clampAffinity(affinity),
		Properties: props,
	}
}

// IsTag reports whether the entity is a tag.
func (e Entity) IsTag() bool { return e.Kind == KindTag }

// AffinityOrZero returns the affinity, treating a missing value as 0.
func (e Entity) AffinityOrZero() float64 {
	if e.Affinity == nil {
		return 0
	}
	return *e.Affinity
}

func clampAffinity(a *float64) *float64 {
	if a == nil {
		return nil
	}
	v := *a
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	return &v
}

// SplitByKind partitions entities into concrete entities and tags, preserving order.
func SplitByKind(entities []Entity) (concrete, tags []Entity) {
	for _, e := range entities {
		if e.IsTag() {
			tags = append(tags, e)
		} else {
			concrete = append(concrete, e)
		}
	}
	return concrete, tags
}

// IDs returns the ids of the first limit entities (all of them when limit <= 0).
func IDs(entities []Entity, limit int) []string {
	n := len(entities)
	if limit > 0 && limit < n {
		n = limit
	}
	if n == 0 {
		return nil
	}
	ids := make([]string, n)
	for i := range n {
		ids[i] = entities[i].ID
	}
	return ids
}

// Properties is the open property record attached to entities.
// Known fields are typed; anything else the upstream sends lands in Extra.
type Properties struct {
	Description string         `json:"description,omitempty"`
	Address     string         `json:"address,omitempty"`
	Website     string         `json:"website,omitempty"`
	ImageURL    string         `json:"image_url,omitempty"`
	PriceLevel  *int           `json:"price_level,omitempty"`
	Popularity  *float64       `json:"popularity,omitempty"`
	Rating      *float64       `json:"business_rating,omitempty"`
	Keywords    []string       `json:"keywords,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// IsZero reports whether no property is set.
func (p Properties) IsZero() bool {
	return p.Description == "" && p.Address == "" && p.Website == "" && p.ImageURL == "" &&
		p.PriceLevel == nil && p.Popularity == nil && p.Rating == nil &&
		len(p.Keywords) == 0 && len(p.Extra) == 0
}
