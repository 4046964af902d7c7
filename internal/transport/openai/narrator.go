package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	"github.com/kailas-cloud/tastegraph/internal/metrics"
)

const (
	defaultMaxTokens = 300
	// maxNarratedRecommendations bounds the prompt size.
	maxNarratedRecommendations = 10
)

const systemPrompt = "You write short, concrete plans that connect a person's cultural tastes " +
	"to a goal. Use only the recommendations you are given. Answer in one paragraph."

// Narrator writes goal narratives using an OpenAI-compatible chat completion API.
type Narrator struct {
	client    *openai.Client
	model     string
	maxTokens int
	provider  string
	logger    *zap.Logger
}

// Config holds the narrator provider settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Provider  string
	Logger    *zap.Logger
}

// NewNarrator creates an OpenAI-compatible narrator.
func NewNarrator(cfg *Config) *Narrator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Narrator{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: maxTokens,
		provider:  cfg.Provider,
		logger:    logger,
	}
}

// Narrate summarizes an enhanced goal in one paragraph.
func (n *Narrator) Narrate(ctx context.Context, in domain.NarrativeInput) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     n.model,
		MaxTokens: n.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(in)},
		},
	}

	start := time.Now()

	resp, err := n.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.NarratorRequestsTotal.WithLabelValues(n.provider, n.model, "error").Inc()
		n.logger.Debug("narrator request failed", zap.Duration("duration", duration), zap.Error(err))
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.NarratorRequestsTotal.WithLabelValues(n.provider, n.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrNarratorProvider)
	}

	metrics.NarratorRequestsTotal.WithLabelValues(n.provider, n.model, "success").Inc()
	metrics.NarratorRequestDuration.WithLabelValues(n.provider, n.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.NarratorTokensTotal.WithLabelValues(n.provider, n.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.NarratorTokensTotal.WithLabelValues(n.provider, n.model, "completion").
			Add(float64(resp.Usage.CompletionTokens))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (n *Narrator) HealthCheck(ctx context.Context) error {
	if _, err := n.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func userPrompt(in domain.NarrativeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n", in.Goal)
	if in.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", in.Category)
	}
	if len(in.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(in.Interests, ", "))
	}
	fmt.Fprintf(&b, "Overall affinity: %.2f\n", in.AffinityScore)
	b.WriteString("Recommendations:\n")
	for _, e := range in.Recommendations[:min(len(in.Recommendations), maxNarratedRecommendations)] {
		fmt.Fprintf(&b, "- %s (%s, affinity %.2f)\n", e.Name, e.Type, e.AffinityOrZero())
	}
	return b.String()
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrNarratorProvider for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrNarratorProvider

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("completion API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("completion API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("completion request: %w", errors.Join(wrap, err))
	}
	return fmt.Errorf("completion request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body (Nebius error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
