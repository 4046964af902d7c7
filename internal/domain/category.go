package domain

import "strings"

// Domain categories used by the lookup tables.
const (
	CategoryFitness  = "fitness"
	CategoryBusiness = "business"
	CategoryTravel   = "travel"
	CategoryMusic    = "music"
	CategoryLearning = "learning"
	CategoryCreative = "creative"
	CategoryFood     = "food"
	CategoryWellness = "wellness"
)

// categoryEntityTypes lists the entity types worth querying for a goal category, in query order.
var categoryEntityTypes = map[string][]EntityType{
	CategoryFitness:  {EntityPlace, EntityBrand, EntityBook},
	CategoryBusiness: {EntityBrand, EntityBook, EntityPerson},
	CategoryTravel:   {EntityDestination, EntityPlace, EntityBook},
	CategoryMusic:    {EntityArtist, EntityPlace, EntityPodcast},
	CategoryLearning: {EntityBook, EntityPodcast, EntityPerson},
	CategoryCreative: {EntityArtist, EntityBook, EntityMovie},
	CategoryFood:     {EntityPlace, EntityBrand, EntityBook},
	CategoryWellness: {EntityPlace, EntityBook, EntityPodcast},
}

var defaultCategoryEntityTypes = []EntityType{EntityPlace}

// EntityTypesForCategory returns the entity types queried for a goal category.
// Unmapped categories fall back to places.
func EntityTypesForCategory(category string) []EntityType {
	types, ok := categoryEntityTypes[normalizeLabel(category)]
	if !ok {
		types = defaultCategoryEntityTypes
	}
	out := make([]EntityType, len(types))
	copy(out, types)
	return out
}

// targetDomainTypes maps a cross-domain target label onto the single entity type queried for it.
// business maps to places, not brands: brand-typed insight queries are rejected upstream.
var targetDomainTypes = map[string]EntityType{
	CategoryFitness:  EntityPlace,
	CategoryTravel:   EntityDestination,
	CategoryMusic:    EntityArtist,
	CategoryBusiness: EntityPlace,
	CategoryLearning: EntityBook,
}

// EntityTypeForDomain returns the entity type queried for a target domain, defaulting to places.
func EntityTypeForDomain(domain string) EntityType {
	if t, ok := targetDomainTypes[normalizeLabel(domain)]; ok {
		return t
	}
	return EntityPlace
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
