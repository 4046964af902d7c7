// Package tastegraph is the only HTTP boundary to the external cultural taste-graph service.
//
// Every method issues exactly one outbound request. The client never retries, caches or
// imposes its own timeout: callers bound each call through the context they pass in.
package tastegraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	"github.com/kailas-cloud/tastegraph/internal/metrics"
	"github.com/kailas-cloud/tastegraph/internal/version"
)

// Endpoint paths.
const (
	endpointSearch    = "/search"
	endpointInsights  = "/v2/insights"
	endpointTags      = "/v2/tags"
	endpointAudiences = "/v2/audiences"
	endpointCompare   = "/v2/insights/compare"
	endpointTrending  = "/v2/trending"
)

const apiKeyHeader = "X-Api-Key"

// maxErrorBody caps how much of a failed response body is kept on HTTPError.
const maxErrorBody = 4 << 10

// Config holds the taste graph connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	// HTTPClient defaults to a client without a timeout.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client is the taste graph gateway. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a gateway. A missing API key is logged and otherwise ignored:
// the upstream rejects the requests itself.
func New(cfg *Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.APIKey == "" {
		logger.Warn("taste graph API key not configured, requests will be rejected upstream")
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
		logger:  logger,
	}
}

// get issues one GET request and decodes a 2xx body into out.
// A body that does not decode leaves out untouched and reports ok=false.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) (ok bool, err error) {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return false, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(endpoint, "network").Inc()
		return false, &domain.NetworkError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(endpoint, httpErrorClass(resp.StatusCode)).Inc()
		c.logger.Debug("taste graph request rejected",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", duration),
		)
		return false, &domain.HTTPError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(endpoint, "network").Inc()
		return false, &domain.NetworkError{Endpoint: endpoint, Err: err}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())

	if err := json.Unmarshal(body, out); err != nil {
		c.shapeMismatch(endpoint, err)
		return false, nil
	}
	return true, nil
}

// shapeMismatch records a payload that could not be normalized. It is never surfaced as an error.
func (c *Client) shapeMismatch(endpoint string, cause error) {
	metrics.UpstreamShapeMismatchTotal.WithLabelValues(endpoint).Inc()
	fields := []zap.Field{zap.String("endpoint", endpoint)}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	c.logger.Debug("unexpected taste graph response shape, using empty result", fields...)
}

func httpErrorClass(status int) string {
	if status >= 500 {
		return "http_5xx"
	}
	return "http_4xx"
}

// Ping performs the cheapest available request to check upstream reachability.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.SearchTags(ctx, "", domain.TagOptions{Take: 1}); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// IsUnauthorized reports whether err is an upstream credential rejection.
func IsUnauthorized(err error) bool {
	var httpErr *domain.HTTPError
	return errors.As(err, &httpErr) && httpErr.Unauthorized()
}
