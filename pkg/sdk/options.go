package tastegraph

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	narrator Narrator

	resolveTake     int
	insightTake     int
	concurrency     int
	defaultLocation string
	compareBridges  bool
	trendingTake    int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithBaseURL sets the taste graph base URL. Required.
func WithBaseURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = url
	})
}

// WithAPIKey sets the taste graph API key sent on every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithHTTPClient replaces the HTTP client used for taste graph calls.
// The client applies no timeout of its own; bound calls with the context instead.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithNarrator enables the narrative of enhanced goals.
func WithNarrator(n Narrator) Option {
	return optionFunc(func(c *clientConfig) {
		c.narrator = n
	})
}

// WithTakes sets how many entities are resolved per interest and returned per insight query.
// Defaults: 5 and 10.
func WithTakes(resolve, insight int) Option {
	return optionFunc(func(c *clientConfig) {
		c.resolveTake = resolve
		c.insightTake = insight
	})
}

// WithConcurrency caps the parallel insight queries of one aggregation. Default: unbounded.
func WithConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.concurrency = n
	})
}

// WithDefaultLocation sets the location queried when discovery has no concrete user entity.
// Default: "New York".
func WithDefaultLocation(loc string) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLocation = loc
	})
}

// WithCompareBridges derives discovery bridges from a real entity comparison
// instead of the templated ones.
func WithCompareBridges() Option {
	return optionFunc(func(c *clientConfig) {
		c.compareBridges = true
	})
}

// WithTrending fills discovery trending crossovers from the taste graph, take per call.
// Disabled by default.
func WithTrending(take int) Option {
	return optionFunc(func(c *clientConfig) {
		c.trendingTake = take
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
