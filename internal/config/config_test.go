package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:       HTTPConfig{Port: 8080},
		TasteGraph: TasteGraphConfig{BaseURL: "https://hackathon.api.qloo.com"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }, "http.port must be at least 1"},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, "http.port must be at most 65535"},
		{"missing base url", func(c *Config) { c.TasteGraph.BaseURL = "" }, "tastegraph.base_url is required"},
		{"bad base url", func(c *Config) { c.TasteGraph.BaseURL = "not a url" }, "tastegraph.base_url must be a valid URL"},
		{"unknown bridge source", func(c *Config) { c.TasteGraph.BridgeSource = "llm" },
			`tastegraph.bridge_source must be one of [synthetic compare], got "llm"`},
		{"unknown trending source", func(c *Config) { c.TasteGraph.TrendingSource = "cache" },
			"tastegraph.trending_source must be one of"},
		{"take too large", func(c *Config) { c.TasteGraph.InsightTake = 500 }, "tastegraph.insight_take must be at most 50"},
		{"bad narrator url", func(c *Config) { c.Narrator.BaseURL = "::" }, "narrator.base_url must be a valid URL"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level must be one of"},
		{"blank api key", func(c *Config) { c.Auth.APIKeys = []string{"k1", ""} }, "auth.api_keys[1] is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 30 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.HTTP.RequestTimeoutSec != 0 {
		t.Errorf("request timeout should stay disabled, got %d", cfg.HTTP.RequestTimeoutSec)
	}
	tg := cfg.TasteGraph
	if tg.ResolveTake != 5 || tg.InsightTake != 10 || tg.Concurrency != 4 || tg.TrendingTake != 5 {
		t.Errorf("unexpected take defaults: %+v", tg)
	}
	if tg.DefaultLocation != "New York" {
		t.Errorf("expected DefaultLocation='New York', got %q", tg.DefaultLocation)
	}
	if tg.BridgeSource != BridgeSourceSynthetic || tg.TrendingSource != TrendingSourceNone {
		t.Errorf("unexpected seam defaults: %q %q", tg.BridgeSource, tg.TrendingSource)
	}
	if cfg.Narrator.Enabled() {
		t.Error("narrator should be disabled without an api key")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		TasteGraph: TasteGraphConfig{
			ResolveTake:     3,
			DefaultLocation: "Lisbon",
			BridgeSource:    BridgeSourceCompare,
			TrendingSource:  TrendingSourceUpstream,
		},
		Narrator: NarratorConfig{Model: "llama-3", MaxTokens: 120},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 || cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("http timeouts overridden: %+v", cfg.HTTP)
	}
	if cfg.TasteGraph.ResolveTake != 3 || cfg.TasteGraph.DefaultLocation != "Lisbon" {
		t.Errorf("tastegraph settings overridden: %+v", cfg.TasteGraph)
	}
	if cfg.TasteGraph.BridgeSource != BridgeSourceCompare || cfg.TasteGraph.TrendingSource != TrendingSourceUpstream {
		t.Errorf("seams overridden: %+v", cfg.TasteGraph)
	}
	if cfg.Narrator.Model != "llama-3" || cfg.Narrator.MaxTokens != 120 {
		t.Errorf("narrator overridden: %+v", cfg.Narrator)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("TG_TEST_KEY", "secret")

	cfg, err := Parse([]byte(`
http:
  port: ${TG_TEST_PORT:-9090}
tastegraph:
  base_url: https://example.com
  api_key: ${TG_TEST_KEY}
narrator:
  api_key: ${TG_TEST_NARRATOR_KEY:-}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected default port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.TasteGraph.APIKey != "secret" {
		t.Errorf("expected api key from env, got %q", cfg.TasteGraph.APIKey)
	}
	if cfg.Narrator.Enabled() {
		t.Error("narrator should be disabled")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	t.Setenv("TASTEGRAPH_BASE_URL", "")

	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("load local config: %v", err)
	}
	if cfg.HTTP.Port == 0 || cfg.TasteGraph.BaseURL == "" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
