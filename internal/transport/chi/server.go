package chi

import (
	"encoding/json"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	"github.com/kailas-cloud/tastegraph/internal/transport/tastegraph"
	healthuc "github.com/kailas-cloud/tastegraph/internal/usecase/health"
)

// Server serves the orchestrators and the direct taste graph queries over HTTP.
type Server struct {
	goals      GoalEnhancer
	components ComponentGenerator
	discovery  Discoverer
	gateway    Gateway
	health     HealthChecker
}

// NewServer creates an HTTP API server.
func NewServer(
	goals GoalEnhancer,
	components ComponentGenerator,
	discovery Discoverer,
	gateway Gateway,
	health HealthChecker,
) *Server {
	return &Server{
		goals:      goals,
		components: components,
		discovery:  discovery,
		gateway:    gateway,
		health:     health,
	}
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r gochi.Router) {
		r.Post("/goals/enhance", s.EnhanceGoal)
		r.Post("/components", s.GenerateComponents)
		r.Post("/discoveries", s.Discover)

		r.Get("/entities/search", s.SearchEntities)
		r.Get("/insights", s.GetInsights)
		r.Get("/tags", s.SearchTags)
		r.Get("/audiences", s.FindAudiences)
		r.Post("/compare", s.CompareEntities)
		r.Get("/trending", s.GetTrending)
	})
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

// decodeBody decodes and validates a JSON body. It writes the error response and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if msg := validateStruct(dst); msg != "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, msg)
		return false
	}
	return true
}

// EnhanceGoal handles POST /v1/goals/enhance.
func (s *Server) EnhanceGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := s.goals.Enhance(r.Context(), req.Goal, req.Profile.toDomain(), req.Context.toDomain())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GenerateComponents handles POST /v1/components. Upstream failures show up per category, never as an error status.
func (s *Server) GenerateComponents(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, s.components.Generate(r.Context(), req.Goal, req.Profile.toDomain(), req.Context.toDomain()))
}

// Discover handles POST /v1/discoveries.
func (s *Server) Discover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := s.discovery.Discover(r.Context(), req.Interests, req.TargetDomain, req.Context.toDomain())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// SearchEntities handles GET /v1/entities/search.
func (s *Server) SearchEntities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "query is required")
		return
	}
	take, page, err := paging(q)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	items, err := s.gateway.SearchEntities(r.Context(), query, entityTypes(queryList(q, "types")), domain.SearchOptions{
		Take:     take,
		Page:     page,
		Location: q.Get("location"),
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Entity]{Items: items})
}

// GetInsights handles GET /v1/insights. Query parameters use the taste graph wire names.
func (s *Server) GetInsights(w http.ResponseWriter, r *http.Request) {
	iq, err := tastegraph.DecodeInsightQuery(r.URL.Query())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if iq.Take > maxTake {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "take must be less than or equal to 50")
		return
	}

	res, err := s.gateway.GetInsights(r.Context(), iq)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SearchTags handles GET /v1/tags.
func (s *Server) SearchTags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	take, page, err := paging(q)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	items, err := s.gateway.SearchTags(r.Context(), q.Get("query"), domain.TagOptions{
		Types: queryList(q, "types"),
		Take:  take,
		Page:  page,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Entity]{Items: items})
}

// FindAudiences handles GET /v1/audiences.
func (s *Server) FindAudiences(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	take, page, err := paging(q)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	items, err := s.gateway.FindAudiences(r.Context(), domain.AudienceOptions{
		Types: queryList(q, "types"),
		Take:  take,
		Page:  page,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Audience]{Items: items})
}

// CompareEntities handles POST /v1/compare.
func (s *Server) CompareEntities(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := s.gateway.CompareEntities(r.Context(), req.GroupA, req.GroupB, domain.CompareOptions{
		FilterType: domain.EntityType(req.FilterType),
		Take:       req.Take,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTrending handles GET /v1/trending.
func (s *Server) GetTrending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typ := q.Get("type")
	if typ == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "type is required")
		return
	}
	take, page, err := paging(q)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	items, err := s.gateway.GetTrendingEntities(r.Context(), domain.EntityType(typ), domain.TrendingOptions{
		Location: q.Get("location"),
		Take:     take,
		Page:     page,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Entity]{Items: items})
}

type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: report.Status,
		Checks: report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
