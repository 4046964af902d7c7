package domain

import "testing"

func TestTasteProfile_Query(t *testing.T) {
	p := TasteProfile{
		Interests:    []string{"jazz", "hiking"},
		Demographics: Demographics{Age: "25_to_29"},
		Location:     Location{Query: "Lisbon"},
		Preferences:  Preferences{PriceLevel: NewRange(1, 3)},
	}
	resolved := []Entity{
		NewEntity("e1", "Blue Note", string(EntityPlace), nil, Properties{}),
		NewEntity("t1", "jazz", "urn:tag:genre:music:jazz", nil, Properties{}),
		NewEntity("e2", "Trail", string(EntityDestination), nil, Properties{}),
	}

	q := p.Query(EntityBook, resolved)

	if q.FilterType != EntityBook {
		t.Errorf("FilterType = %s", q.FilterType)
	}
	if len(q.Signals.Entities) != 2 || q.Signals.Entities[0] != "e1" || q.Signals.Entities[1] != "e2" {
		t.Errorf("entity signals = %v", q.Signals.Entities)
	}
	if len(q.Signals.Tags) != 1 || q.Signals.Tags[0] != "t1" {
		t.Errorf("tag signals = %v", q.Signals.Tags)
	}
	if q.Signals.Demographics.Age != "25_to_29" {
		t.Errorf("age = %q", q.Signals.Demographics.Age)
	}
	if q.Signals.Location.Query != "Lisbon" {
		t.Errorf("location = %q", q.Signals.Location.Query)
	}
	if q.Filters.PriceLevel.Min == nil || *q.Filters.PriceLevel.Min != 1 {
		t.Errorf("price min = %v", q.Filters.PriceLevel.Min)
	}
}

func TestProjectContext_PriceRange(t *testing.T) {
	tests := []struct {
		budget   string
		min, max float64
		empty    bool
	}{
		{"low", 1, 2, false},
		{"Medium", 2, 3, false},
		{"high", 3, 4, false},
		{"", 0, 0, true},
		{"lavish", 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.budget, func(t *testing.T) {
			r := ProjectContext{Budget: tc.budget}.PriceRange()
			if tc.empty {
				if !r.IsZero() {
					t.Errorf("expected empty range, got %+v", r)
				}
				return
			}
			if *r.Min != tc.min || *r.Max != tc.max {
				t.Errorf("range = [%f,%f], want [%f,%f]", *r.Min, *r.Max, tc.min, tc.max)
			}
		})
	}
}
