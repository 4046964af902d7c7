package tastegraph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	"github.com/kailas-cloud/tastegraph/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterUpstreamMetrics()
	os.Exit(m.Run())
}

// newTestClient starts a server answering every request with handler and counts calls.
func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return New(&Config{BaseURL: server.URL + "/", APIKey: apiKey, Logger: zap.NewNop()}), &calls
}

func writeBody(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestSearchEntities(t *testing.T) {
	client, calls := newTestClient(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("unexpected api key header: %q", got)
		}
		q := r.URL.Query()
		if q.Get("query") != "jazz" {
			t.Errorf("query = %q", q.Get("query"))
		}
		if q.Get("types") != "urn:entity:artist,urn:entity:place" {
			t.Errorf("types = %q", q.Get("types"))
		}
		if q.Get("take") != "5" {
			t.Errorf("take = %q", q.Get("take"))
		}
		if _, ok := q["filter.location"]; ok {
			t.Error("text location must not be attached to a search call")
		}
		writeBody(w, `{"results":[
			{"entity_id":"A1","name":"Miles Davis","types":["urn:entity:artist","urn:entity:person"],"affinity":0.8,
			 "properties":{"description":"trumpeter","image":{"url":"http://img"},"birthplace":"Alton"}},
			{"entity_id":"T1","name":"Jazz","types":["urn:tag:genre:music:jazz"]}
		]}`)
	})

	got, err := client.SearchEntities(context.Background(), "jazz",
		[]domain.EntityType{domain.EntityArtist, domain.EntityPlace},
		domain.SearchOptions{Take: 5, Location: "New York"})
	if err != nil {
		t.Fatalf("SearchEntities failed: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 request, got %d", calls.Load())
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(got))
	}

	first := got[0]
	if first.ID != "A1" || first.Type != "urn:entity:artist" || first.Kind != domain.KindConcrete {
		t.Errorf("unexpected first entity: %+v", first)
	}
	if first.Affinity == nil || *first.Affinity != 0.8 {
		t.Errorf("affinity = %v", first.Affinity)
	}
	if first.Properties.Description != "trumpeter" || first.Properties.ImageURL != "http://img" {
		t.Errorf("known properties not decoded: %+v", first.Properties)
	}
	if first.Properties.Extra["birthplace"] != "Alton" {
		t.Errorf("unknown property not kept in Extra: %v", first.Properties.Extra)
	}
	if !got[1].IsTag() {
		t.Error("tag-typed search result must be classified as a tag")
	}
}

func TestSearchEntities_CoordinateLocation(t *testing.T) {
	client, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filter.location"); got != "40.7128,-74.006" {
			t.Errorf("filter.location = %q", got)
		}
		writeBody(w, `{"results":[]}`)
	})

	got, err := client.SearchEntities(context.Background(), "coffee", nil,
		domain.SearchOptions{Location: "40.7128,-74.006"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %v", got)
	}
}

func TestSearchEntities_ShapeMismatch(t *testing.T) {
	client, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"results":{"entities":"nope"}}`)
	})
	before := testutil.ToFloat64(metrics.UpstreamShapeMismatchTotal.WithLabelValues("/search"))

	got, err := client.SearchEntities(context.Background(), "x", nil, domain.SearchOptions{})
	if err != nil {
		t.Fatalf("shape mismatch must not surface as error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
	after := testutil.ToFloat64(metrics.UpstreamShapeMismatchTotal.WithLabelValues("/search"))
	if after-before != 1 {
		t.Errorf("shape mismatch counter delta = %f, want 1", after-before)
	}
}

func TestGetInsights_NormalizesNestedEntities(t *testing.T) {
	client, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/insights" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("filter.type") != "urn:entity:place" {
			t.Errorf("filter.type = %q", q.Get("filter.type"))
		}
		if q.Get("signal.interests.tags") != "t1,t2" {
			t.Errorf("signal.interests.tags = %q", q.Get("signal.interests.tags"))
		}
		if q.Get("feature.explainability") != "true" {
			t.Errorf("feature.explainability = %q", q.Get("feature.explainability"))
		}
		writeBody(w, `{"success":true,"results":{"entities":[
			{"entity_id":"E1","name":"Gym","subtype":"urn:entity:place","type":"urn:entity","query":{"affinity":0.93},
			 "properties":{"price_level":2,"keywords":[{"name":"boxing"},{"name":"cardio"}]}},
			{"id":"E2","name":"Park","type":"urn:entity:place","affinity":0.41}
		]},"query":{"explainability":{"signal.interests.tags":[]}}}`)
	})

	res, err := client.GetInsights(context.Background(), domain.InsightQuery{
		FilterType:     domain.EntityPlace,
		Signals:        domain.Signals{Tags: []string{"t1", "t2"}},
		Explainability: true,
	})
	if err != nil {
		t.Fatalf("GetInsights failed: %v", err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res.Results))
	}

	e1, e2 := res.Results[0], res.Results[1]
	if e1.ID != "E1" || e1.Type != "urn:entity:place" {
		t.Errorf("subtype must win over type: %+v", e1)
	}
	if e1.Affinity == nil || *e1.Affinity != 0.93 {
		t.Errorf("query.affinity must win: %v", e1.Affinity)
	}
	if e1.Properties.PriceLevel == nil || *e1.Properties.PriceLevel != 2 {
		t.Errorf("price level = %v", e1.Properties.PriceLevel)
	}
	if len(e1.Properties.Keywords) != 2 || e1.Properties.Keywords[0] != "boxing" {
		t.Errorf("keywords = %v", e1.Properties.Keywords)
	}
	if e2.ID != "E2" || e2.Type != "urn:entity:place" {
		t.Errorf("id/type fallback failed: %+v", e2)
	}
	if e2.Affinity == nil || *e2.Affinity != 0.41 {
		t.Errorf("top-level affinity fallback failed: %v", e2.Affinity)
	}
	if res.Query.Explainability == nil {
		t.Error("explainability meta not carried over")
	}
}

func TestGetInsights_MissingNestedShapeYieldsEmpty(t *testing.T) {
	bodies := []string{
		`{"results":[]}`,
		`{"results":{}}`,
		`{"success":true}`,
		`not json`,
		``,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			client, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
				writeBody(w, body)
			})
			res, err := client.GetInsights(context.Background(), domain.InsightQuery{FilterType: domain.EntityBook})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Results == nil || len(res.Results) != 0 {
				t.Errorf("expected empty non-nil results, got %v", res.Results)
			}
		})
	}
}

func TestGetInsights_HTTPError(t *testing.T) {
	client, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"not allowed"}`))
	})

	_, err := client.GetInsights(context.Background(), domain.InsightQuery{FilterType: domain.EntityBrand})
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	var httpErr *domain.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusForbidden || httpErr.Body != `{"error":"not allowed"}` {
		t.Errorf("unexpected HTTPError: %+v", httpErr)
	}
	if !IsUnauthorized(err) {
		t.Error("403 must be reported as unauthorized")
	}
}

func TestGetInsights_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(&Config{BaseURL: url, APIKey: "k", Logger: zap.NewNop()})
	_, err := client.GetInsights(context.Background(), domain.InsightQuery{FilterType: domain.EntityPlace})
	if err == nil {
		t.Fatal("expected network error")
	}
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Error("network error must unwrap to ErrUpstream")
	}
}

func TestClient_MissingAPIKeyStillSends(t *testing.T) {
	client, calls := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["X-Api-Key"]; ok {
			t.Error("no api key header expected")
		}
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.SearchEntities(context.Background(), "x", nil, domain.SearchOptions{})
	if calls.Load() != 1 {
		t.Errorf("request must still be sent, got %d calls", calls.Load())
	}
	if !IsUnauthorized(err) {
		t.Errorf("expected upstream rejection, got %v", err)
	}
}

func TestSearchTags(t *testing.T) {
	client, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/tags" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("filter.query") != "jazz" {
			t.Errorf("filter.query = %q", r.URL.Query().Get("filter.query"))
		}
		writeBody(w, `{"results":{"tags":[{"id":"urn:tag:genre:music:jazz","name":"Jazz","type":"urn:tag:genre:music"}]}}`)
	})

	tags, err := client.SearchTags(context.Background(), "jazz", domain.TagOptions{Take: 3})
	if err != nil {
		t.Fatalf("SearchTags failed: %v", err)
	}
	if len(tags) != 1 || !tags[0].IsTag() || tags[0].ID != "urn:tag:genre:music:jazz" {
		t.Errorf("unexpected tags: %+v", tags)
	}
}

func TestFindAudiences(t *testing.T) {
	client, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filter.audience.types") != "urn:audience:communities" {
			t.Errorf("filter.audience.types = %q", r.URL.Query().Get("filter.audience.types"))
		}
		writeBody(w, `{"results":{"audiences":[{"id":"aud1","name":"Runners","entity_type":"urn:audience:communities"}]}}`)
	})

	got, err := client.FindAudiences(context.Background(), domain.AudienceOptions{Types: []string{"urn:audience:communities"}})
	if err != nil {
		t.Fatalf("FindAudiences failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Runners" || got[0].Type != "urn:audience:communities" {
		t.Errorf("unexpected audiences: %+v", got)
	}
}

func TestCompareEntities(t *testing.T) {
	client, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("a.signal.interests.entities") != "a1,a2" || q.Get("b.signal.interests.entities") != "b1" {
			t.Errorf("unexpected groups: %v", q)
		}
		writeBody(w, `{"results":{"tags":[{"tag_id":"urn:tag:keyword:x","name":"X","subtype":"urn:tag:keyword","query":{"affinity":0.6}}]}}`)
	})

	cmp, err := client.CompareEntities(context.Background(), []string{"a1", "a2"}, []string{"b1"}, domain.CompareOptions{})
	if err != nil {
		t.Fatalf("CompareEntities failed: %v", err)
	}
	if len(cmp.Shared) != 1 || cmp.Shared[0].ID != "urn:tag:keyword:x" || !cmp.Shared[0].IsTag() {
		t.Errorf("unexpected comparison: %+v", cmp)
	}
}

func TestGetTrendingEntities(t *testing.T) {
	client, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/trending" || r.URL.Query().Get("filter.type") != "urn:entity:movie" {
			t.Errorf("unexpected request: %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		writeBody(w, `{"results":{"entities":[{"entity_id":"M1","name":"Film","type":"urn:entity:movie"}]}}`)
	})

	got, err := client.GetTrendingEntities(context.Background(), domain.EntityMovie, domain.TrendingOptions{Take: 2})
	if err != nil {
		t.Fatalf("GetTrendingEntities failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "M1" {
		t.Errorf("unexpected trending: %+v", got)
	}
}

func TestClient_RecordsRequestMetrics(t *testing.T) {
	client, _ := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"results":{"audiences":[]}}`)
	})
	before := testutil.ToFloat64(metrics.UpstreamRequestsTotal.WithLabelValues("/v2/audiences", "success"))

	if _, err := client.FindAudiences(context.Background(), domain.AudienceOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := testutil.ToFloat64(metrics.UpstreamRequestsTotal.WithLabelValues("/v2/audiences", "success"))
	if after-before != 1 {
		t.Errorf("requests_total delta = %f, want 1", after-before)
	}
}
