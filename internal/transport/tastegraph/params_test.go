package tastegraph

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

func TestEncodeInsightQuery_CommaJoinsAndOmitsUnset(t *testing.T) {
	q := domain.InsightQuery{
		FilterType: domain.EntityPlace,
		Signals: domain.Signals{
			Entities: []string{"a", "", "b"},
			Location: domain.Location{Query: "Berlin"},
		},
		Filters: domain.Filters{PriceLevel: domain.NewRange(1, 2)},
		Take:    10,
	}

	v := EncodeInsightQuery(q)

	if got := v["signal.interests.entities"]; !reflect.DeepEqual(got, []string{"a,b"}) {
		t.Errorf("entities = %v, want [a,b]", got)
	}
	if v.Get("filter.price_level.min") != "1" || v.Get("filter.price_level.max") != "2" {
		t.Errorf("price range = %q..%q", v.Get("filter.price_level.min"), v.Get("filter.price_level.max"))
	}
	if v.Get("signal.location.query") != "Berlin" {
		t.Errorf("location query = %q", v.Get("signal.location.query"))
	}
	for _, key := range []string{
		"signal.interests.tags", "signal.demographics.age", "signal.location",
		"filter.tags", "filter.popularity.min", "page", "feature.explainability",
	} {
		if _, ok := v[key]; ok {
			t.Errorf("unset parameter %q must be omitted", key)
		}
	}
}

func TestEncodeInsightQuery_CoordinatesAsPoint(t *testing.T) {
	v := EncodeInsightQuery(domain.InsightQuery{
		FilterType: domain.EntityPlace,
		Signals: domain.Signals{Location: domain.Location{
			Coordinates: &domain.Coordinates{Latitude: 40.7, Longitude: -74},
		}},
	})
	if got := v.Get("signal.location"); got != "POINT(-74 40.7)" {
		t.Errorf("signal.location = %q", got)
	}
}

func TestDecodeInsightQuery_RoundTrip(t *testing.T) {
	profile := domain.TasteProfile{
		Demographics: domain.Demographics{Age: "25_to_29"},
		Location: domain.Location{
			Query:       "Lisbon",
			Coordinates: &domain.Coordinates{Latitude: 38.72, Longitude: -9.14},
		},
		Preferences: domain.Preferences{PriceLevel: domain.NewRange(2, 3)},
	}
	resolved := []domain.Entity{
		domain.NewEntity("E1", "Gym", string(domain.EntityPlace), nil, domain.Properties{}),
		domain.NewEntity("T1", "Yoga", "urn:tag:keyword", nil, domain.Properties{}),
		domain.NewEntity("E2", "Shoe", string(domain.EntityBrand), nil, domain.Properties{}),
	}
	q := profile.Query(domain.EntityBook, resolved)
	q.Take = 7

	got, err := DecodeInsightQuery(EncodeInsightQuery(q))
	if err != nil {
		t.Fatalf("DecodeInsightQuery failed: %v", err)
	}
	if got.FilterType != domain.EntityBook {
		t.Errorf("filter type = %q", got.FilterType)
	}
	if !reflect.DeepEqual(got.Signals.Entities, []string{"E1", "E2"}) {
		t.Errorf("entities = %v", got.Signals.Entities)
	}
	if !reflect.DeepEqual(got.Signals.Tags, []string{"T1"}) {
		t.Errorf("tags = %v", got.Signals.Tags)
	}
	if got.Signals.Demographics.Age != "25_to_29" || got.Signals.Location.Query != "Lisbon" {
		t.Errorf("signals not recovered: %+v", got.Signals)
	}
	if c := got.Signals.Location.Coordinates; c == nil || c.Latitude != 38.72 || c.Longitude != -9.14 {
		t.Errorf("coordinates = %+v", c)
	}
	if r := got.Filters.PriceLevel; r.Min == nil || *r.Min != 2 || r.Max == nil || *r.Max != 3 {
		t.Errorf("price range not recovered: %+v", r)
	}
	if got.Take != 7 {
		t.Errorf("take = %d", got.Take)
	}
}

func TestDecodeInsightQuery_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing filter type", "signal.interests.entities=a"},
		{"bad take", "filter.type=urn:entity:place&take=ten"},
		{"negative page", "filter.type=urn:entity:place&page=-1"},
		{"bad range", "filter.type=urn:entity:place&filter.rating.min=high"},
		{"bad point", "filter.type=urn:entity:place&signal.location=40,-74"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.raw)
			if err != nil {
				t.Fatalf("bad fixture: %v", err)
			}
			if _, err := DecodeInsightQuery(v); !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestIsCoordinatePair(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"40.7128,-74.0060", true},
		{" 51.5 , -0.12 ", true},
		{"-90,180", true},
		{"91,0", false},
		{"0,181", false},
		{"New York", false},
		{"40.7", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCoordinatePair(tt.in); got != tt.want {
			t.Errorf("IsCoordinatePair(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
