package tastegraph

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// Wire parameter names.
const (
	paramFilterType         = "filter.type"
	paramSignalEntities     = "signal.interests.entities"
	paramSignalTags         = "signal.interests.tags"
	paramSignalAge          = "signal.demographics.age"
	paramSignalGender       = "signal.demographics.gender"
	paramSignalLocation     = "signal.location"
	paramSignalLocationText = "signal.location.query"
	paramFilterLocation     = "filter.location"
	paramFilterLocationText = "filter.location.query"
	paramFilterTags         = "filter.tags"
	paramFilterPrice        = "filter.price_level"
	paramFilterPopularity   = "filter.popularity"
	paramFilterRating       = "filter.rating"
	paramExplainability     = "feature.explainability"
	paramTake               = "take"
	paramPage               = "page"
)

// params builds a query string. Lists are comma-joined into one value;
// unset values (empty strings, empty lists, nil pointers, zero counts) are omitted.
type params struct {
	v url.Values
}

func newParams() *params { return &params{v: url.Values{}} }

func (p *params) str(key, val string) {
	if val != "" {
		p.v.Set(key, val)
	}
}

func (p *params) list(key string, vals []string) {
	kept := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) > 0 {
		p.v.Set(key, strings.Join(kept, ","))
	}
}

func (p *params) count(key string, n int) {
	if n > 0 {
		p.v.Set(key, strconv.Itoa(n))
	}
}

func (p *params) float(key string, f *float64) {
	if f != nil {
		p.v.Set(key, strconv.FormatFloat(*f, 'f', -1, 64))
	}
}

func (p *params) flag(key string, on bool) {
	if on {
		p.v.Set(key, "true")
	}
}

func (p *params) rng(prefix string, r domain.Range) {
	p.float(prefix+".min", r.Min)
	p.float(prefix+".max", r.Max)
}

func (p *params) values() url.Values { return p.v }

// EncodeInsightQuery serializes an insight query into wire parameters.
func EncodeInsightQuery(q domain.InsightQuery) url.Values {
	p := newParams()
	p.str(paramFilterType, string(q.FilterType))

	p.list(paramSignalEntities, q.Signals.Entities)
	p.list(paramSignalTags, q.Signals.Tags)
	p.str(paramSignalAge, q.Signals.Demographics.Age)
	p.str(paramSignalGender, q.Signals.Demographics.Gender)
	p.str(paramSignalLocationText, q.Signals.Location.Query)
	if c := q.Signals.Location.Coordinates; c != nil {
		p.str(paramSignalLocation, formatPoint(*c))
	}

	p.str(paramFilterLocationText, q.Filters.Location)
	p.list(paramFilterTags, q.Filters.Tags)
	p.rng(paramFilterPrice, q.Filters.PriceLevel)
	p.rng(paramFilterPopularity, q.Filters.Popularity)
	p.rng(paramFilterRating, q.Filters.Rating)

	p.count(paramTake, q.Take)
	p.count(paramPage, q.Page)
	p.flag(paramExplainability, q.Explainability)
	return p.values()
}

// DecodeInsightQuery parses wire parameters back into an insight query.
func DecodeInsightQuery(v url.Values) (domain.InsightQuery, error) {
	q := domain.InsightQuery{FilterType: domain.EntityType(v.Get(paramFilterType))}
	if q.FilterType == "" {
		return domain.InsightQuery{}, fmt.Errorf("%w: %s is required", domain.ErrInvalidRequest, paramFilterType)
	}

	q.Signals.Entities = splitList(v.Get(paramSignalEntities))
	q.Signals.Tags = splitList(v.Get(paramSignalTags))
	q.Signals.Demographics = domain.Demographics{
		Age:    v.Get(paramSignalAge),
		Gender: v.Get(paramSignalGender),
	}
	q.Signals.Location.Query = v.Get(paramSignalLocationText)
	if raw := v.Get(paramSignalLocation); raw != "" {
		c, err := parsePoint(raw)
		if err != nil {
			return domain.InsightQuery{}, err
		}
		q.Signals.Location.Coordinates = &c
	}

	q.Filters.Location = v.Get(paramFilterLocationText)
	q.Filters.Tags = splitList(v.Get(paramFilterTags))

	var err error
	if q.Filters.PriceLevel, err = parseRange(v, paramFilterPrice); err != nil {
		return domain.InsightQuery{}, err
	}
	if q.Filters.Popularity, err = parseRange(v, paramFilterPopularity); err != nil {
		return domain.InsightQuery{}, err
	}
	if q.Filters.Rating, err = parseRange(v, paramFilterRating); err != nil {
		return domain.InsightQuery{}, err
	}
	if q.Take, err = parseCount(v, paramTake); err != nil {
		return domain.InsightQuery{}, err
	}
	if q.Page, err = parseCount(v, paramPage); err != nil {
		return domain.InsightQuery{}, err
	}
	q.Explainability = v.Get(paramExplainability) == "true"
	return q, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseRange(v url.Values, prefix string) (domain.Range, error) {
	var r domain.Range
	for _, end := range []struct {
		key string
		dst **float64
	}{{prefix + ".min", &r.Min}, {prefix + ".max", &r.Max}} {
		raw := v.Get(end.key)
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Range{}, fmt.Errorf("%w: %s: %q is not a number", domain.ErrInvalidRequest, end.key, raw)
		}
		*end.dst = &f
	}
	return r, nil
}

func parseCount(v url.Values, key string) (int, error) {
	raw := v.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s: %q is not a non-negative integer", domain.ErrInvalidRequest, key, raw)
	}
	return n, nil
}

// formatPoint renders coordinates as WKT, longitude first.
func formatPoint(c domain.Coordinates) string {
	return fmt.Sprintf("POINT(%s %s)",
		strconv.FormatFloat(c.Longitude, 'f', -1, 64),
		strconv.FormatFloat(c.Latitude, 'f', -1, 64))
}

var pointRegex = regexp.MustCompile(`^POINT\(\s*(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)\s*\)$`)

func parsePoint(raw string) (domain.Coordinates, error) {
	m := pointRegex.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %s: %q is not a WKT point", domain.ErrInvalidRequest, paramSignalLocation, raw)
	}
	lon, _ := strconv.ParseFloat(m[1], 64)
	lat, _ := strconv.ParseFloat(m[2], 64)
	return domain.Coordinates{Latitude: lat, Longitude: lon}, nil
}

var coordinatePairRegex = regexp.MustCompile(`^\s*(-?\d{1,3}(?:\.\d+)?)\s*,\s*(-?\d{1,3}(?:\.\d+)?)\s*$`)

// IsCoordinatePair reports whether s is a "lat,lon" pair within WGS84 bounds.
func IsCoordinatePair(s string) bool {
	m := coordinatePairRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	lat, errLat := strconv.ParseFloat(m[1], 64)
	lon, errLon := strconv.ParseFloat(m[2], 64)
	return errLat == nil && errLon == nil && lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
