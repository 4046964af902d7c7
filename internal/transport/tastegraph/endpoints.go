package tastegraph

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// SearchEntities resolves free text into taste-graph entities.
func (c *Client) SearchEntities(
	ctx context.Context, query string, types []domain.EntityType, opts domain.SearchOptions,
) ([]domain.Entity, error) {
	p := newParams()
	p.str("query", query)
	p.list("types", typeStrings(types))
	p.count(paramTake, opts.Take)
	p.count(paramPage, opts.Page)
	// The search endpoint only understands coordinates; text locations are dropped.
	if IsCoordinatePair(opts.Location) {
		p.str(paramFilterLocation, opts.Location)
	}

	var resp searchResponse
	ok, err := c.get(ctx, endpointSearch, p.values(), &resp)
	if err != nil {
		return nil, fmt.Errorf("search entities: %w", err)
	}
	if !ok || resp.Results == nil {
		if ok {
			c.shapeMismatch(endpointSearch, nil)
		}
		return []domain.Entity{}, nil
	}

	out := make([]domain.Entity, len(resp.Results))
	for i, it := range resp.Results {
		out[i] = it.toEntity()
	}
	return out, nil
}

// GetInsights runs a signal/filter-bearing recommendation query.
func (c *Client) GetInsights(ctx context.Context, q domain.InsightQuery) (domain.InsightResult, error) {
	var env envelope
	ok, err := c.get(ctx, endpointInsights, EncodeInsightQuery(q), &env)
	if err != nil {
		return domain.InsightResult{}, fmt.Errorf("get insights: %w", err)
	}

	result := domain.InsightResult{Results: []domain.Entity{}}
	if !ok {
		return result, nil
	}
	result.Query, result.Pagination = env.meta()

	nested, shaped := env.nested()
	if !shaped || nested.Entities == nil {
		c.shapeMismatch(endpointInsights, nil)
		return result, nil
	}
	result.Results = make([]domain.Entity, len(nested.Entities))
	for i, it := range nested.Entities {
		result.Results[i] = it.toEntity()
	}
	return result, nil
}

// SearchTags looks up taste-graph tags by free text. An empty query lists tags.
func (c *Client) SearchTags(ctx context.Context, query string, opts domain.TagOptions) ([]domain.Entity, error) {
	p := newParams()
	p.str("filter.query", query)
	p.list("filter.tag.types", opts.Types)
	p.count(paramTake, opts.Take)
	p.count(paramPage, opts.Page)

	var env envelope
	ok, err := c.get(ctx, endpointTags, p.values(), &env)
	if err != nil {
		return nil, fmt.Errorf("search tags: %w", err)
	}
	if !ok {
		return []domain.Entity{}, nil
	}
	nested, shaped := env.nested()
	if !shaped || nested.Tags == nil {
		c.shapeMismatch(endpointTags, nil)
		return []domain.Entity{}, nil
	}

	out := make([]domain.Entity, len(nested.Tags))
	for i, it := range nested.Tags {
		out[i] = it.toEntity()
	}
	return out, nil
}

// FindAudiences lists audience segments.
func (c *Client) FindAudiences(ctx context.Context, opts domain.AudienceOptions) ([]domain.Audience, error) {
	p := newParams()
	p.list("filter.audience.types", opts.Types)
	p.count(paramTake, opts.Take)
	p.count(paramPage, opts.Page)

	var env envelope
	ok, err := c.get(ctx, endpointAudiences, p.values(), &env)
	if err != nil {
		return nil, fmt.Errorf("find audiences: %w", err)
	}
	if !ok {
		return []domain.Audience{}, nil
	}
	nested, shaped := env.nested()
	if !shaped || nested.Audiences == nil {
		c.shapeMismatch(endpointAudiences, nil)
		return []domain.Audience{}, nil
	}

	out := make([]domain.Audience, len(nested.Audiences))
	for i, it := range nested.Audiences {
		out[i] = domain.Audience{ID: it.ID, Name: it.Name, Type: firstNonEmpty(it.EntityType, it.Type)}
	}
	return out, nil
}

// CompareEntities compares two groups of entity ids and returns what they share.
func (c *Client) CompareEntities(
	ctx context.Context, groupA, groupB []string, opts domain.CompareOptions,
) (domain.Comparison, error) {
	p := newParams()
	p.list("a."+paramSignalEntities, groupA)
	p.list("b."+paramSignalEntities, groupB)
	p.str(paramFilterType, string(opts.FilterType))
	p.count(paramTake, opts.Take)

	var env envelope
	ok, err := c.get(ctx, endpointCompare, p.values(), &env)
	if err != nil {
		return domain.Comparison{}, fmt.Errorf("compare entities: %w", err)
	}
	cmp := domain.Comparison{Shared: []domain.Entity{}}
	if !ok {
		return cmp, nil
	}
	nested, shaped := env.nested()
	if !shaped {
		c.shapeMismatch(endpointCompare, nil)
		return cmp, nil
	}
	for _, it := range nested.Entities {
		cmp.Shared = append(cmp.Shared, it.toEntity())
	}
	for _, it := range nested.Tags {
		cmp.Shared = append(cmp.Shared, it.toEntity())
	}
	return cmp, nil
}

// GetTrendingEntities lists currently trending entities of one type.
func (c *Client) GetTrendingEntities(
	ctx context.Context, typ domain.EntityType, opts domain.TrendingOptions,
) ([]domain.Entity, error) {
	p := newParams()
	p.str(paramFilterType, string(typ))
	p.str(paramSignalLocationText, opts.Location)
	p.count(paramTake, opts.Take)
	p.count(paramPage, opts.Page)

	var env envelope
	ok, err := c.get(ctx, endpointTrending, p.values(), &env)
	if err != nil {
		return nil, fmt.Errorf("get trending entities: %w", err)
	}
	if !ok {
		return []domain.Entity{}, nil
	}
	nested, shaped := env.nested()
	if !shaped || nested.Entities == nil {
		c.shapeMismatch(endpointTrending, nil)
		return []domain.Entity{}, nil
	}

	out := make([]domain.Entity, len(nested.Entities))
	for i, it := range nested.Entities {
		out[i] = it.toEntity()
	}
	return out, nil
}

func typeStrings(types []domain.EntityType) []string {
	if len(types) == 0 {
		return nil
	}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
