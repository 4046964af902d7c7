package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// --- Mocks ---

type searchCall struct {
	query string
	opts  domain.SearchOptions
}

type mockSearcher struct {
	results map[string][]domain.Entity
	failOn  string
	calls   []searchCall
}

func (m *mockSearcher) SearchEntities(
	_ context.Context, query string, _ []domain.EntityType, opts domain.SearchOptions,
) ([]domain.Entity, error) {
	m.calls = append(m.calls, searchCall{query: query, opts: opts})
	if query == m.failOn {
		return nil, &domain.HTTPError{Endpoint: "/search", StatusCode: 500, Body: "boom"}
	}
	return m.results[query], nil
}

func entity(id string) domain.Entity {
	return domain.NewEntity(id, id, string(domain.EntityPlace), nil, domain.Properties{})
}

// --- Tests ---

func TestResolve_OneSearchPerInterestInOrder(t *testing.T) {
	m := &mockSearcher{results: map[string][]domain.Entity{
		"yoga":   {entity("Y1"), entity("Y2")},
		"coffee": {entity("C1")},
		"jazz":   {entity("J1"), entity("J2"), entity("J3")},
	}}
	svc := New(m, 0)

	got, err := svc.Resolve(context.Background(), []string{"jazz", "yoga", "coffee"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.calls) != 3 {
		t.Fatalf("expected 3 search calls, got %d", len(m.calls))
	}
	for i, want := range []string{"jazz", "yoga", "coffee"} {
		if m.calls[i].query != want {
			t.Errorf("call %d: expected %q, got %q", i, want, m.calls[i].query)
		}
		if m.calls[i].opts.Take != DefaultTake {
			t.Errorf("call %d: expected take %d, got %d", i, DefaultTake, m.calls[i].opts.Take)
		}
	}

	wantIDs := []string{"J1", "J2", "J3", "Y1", "Y2", "C1"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d entities, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestResolve_NoDeduplication(t *testing.T) {
	shared := entity("S1")
	m := &mockSearcher{results: map[string][]domain.Entity{
		"running": {shared},
		"jogging": {shared},
	}}

	got, err := New(m, 5).Resolve(context.Background(), []string{"running", "jogging"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "S1" || got[1].ID != "S1" {
		t.Errorf("expected the shared entity twice, got %+v", got)
	}
}

func TestResolve_FailFast(t *testing.T) {
	m := &mockSearcher{
		results: map[string][]domain.Entity{"a": {entity("A1")}},
		failOn:  "b",
	}

	got, err := New(m, 5).Resolve(context.Background(), []string{"a", "b", "c"}, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil result on failure, got %v", got)
	}
	if len(m.calls) != 2 {
		t.Errorf("expected resolution to stop after the failing call, got %d calls", len(m.calls))
	}
}

func TestResolve_PassesLocationAndTake(t *testing.T) {
	m := &mockSearcher{}

	if _, err := New(m, 3).Resolve(context.Background(), []string{"x"}, "40.7,-74.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.calls[0].opts.Take != 3 || m.calls[0].opts.Location != "40.7,-74.0" {
		t.Errorf("unexpected options: %+v", m.calls[0].opts)
	}
}

func TestResolve_EmptyInterests(t *testing.T) {
	m := &mockSearcher{}
	got, err := New(m, 5).Resolve(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 || len(m.calls) != 0 {
		t.Errorf("expected no calls and no entities, got %d calls, %d entities", len(m.calls), len(got))
	}
}
