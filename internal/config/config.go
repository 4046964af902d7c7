package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Seam implementations selectable from config.
const (
	BridgeSourceSynthetic = "synthetic"
	BridgeSourceCompare   = "compare"

	TrendingSourceNone     = "none"
	TrendingSourceUpstream = "upstream"
)

// Config holds the tastegraph API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	TasteGraph TasteGraphConfig `yaml:"tastegraph"`
	Narrator   NarratorConfig   `yaml:"narrator"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"` // default: determined by env
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys" validate:"dive,required"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port               int      `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeoutSec     int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int      `yaml:"write_timeout_sec"`
	ShutdownSec        int      `yaml:"shutdown_timeout_sec"`
	// RequestTimeoutSec bounds every inbound request, upstream calls included. 0 disables it.
	RequestTimeoutSec  int      `yaml:"request_timeout_sec" validate:"gte=0"`
	// CORSAllowedOrigins enables CORS for the listed origins.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" validate:"dive,required"`
}

// TasteGraphConfig holds the upstream taste graph settings.
type TasteGraphConfig struct {
	BaseURL         string `yaml:"base_url" validate:"required,url"`
	APIKey          string `yaml:"api_key"`
	ResolveTake     int    `yaml:"resolve_take" validate:"gte=0,lte=50"`
	InsightTake     int    `yaml:"insight_take" validate:"gte=0,lte=50"`
	Concurrency     int    `yaml:"concurrency" validate:"gte=0"`
	DefaultLocation string `yaml:"default_location"`
	BridgeSource    string `yaml:"bridge_source" validate:"oneof=synthetic compare"`
	TrendingSource  string `yaml:"trending_source" validate:"oneof=none upstream"`
	TrendingTake    int    `yaml:"trending_take" validate:"gte=0,lte=50"`
}

// NarratorConfig holds the LLM narrator settings. The narrator is disabled when APIKey is empty.
type NarratorConfig struct {
	Provider  string `yaml:"provider"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url" validate:"omitempty,url"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens" validate:"gte=0"`
}

// Enabled reports whether a narrator should be built.
func (n NarratorConfig) Enabled() bool { return n.APIKey != "" }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands env variables in data, decodes it, applies defaults and validates the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.TasteGraph.ResolveTake <= 0 {
		c.TasteGraph.ResolveTake = 5
	}
	if c.TasteGraph.InsightTake <= 0 {
		c.TasteGraph.InsightTake = 10
	}
	if c.TasteGraph.Concurrency <= 0 {
		c.TasteGraph.Concurrency = 4
	}
	if c.TasteGraph.DefaultLocation == "" {
		c.TasteGraph.DefaultLocation = "New York"
	}
	if c.TasteGraph.BridgeSource == "" {
		c.TasteGraph.BridgeSource = BridgeSourceSynthetic
	}
	if c.TasteGraph.TrendingSource == "" {
		c.TasteGraph.TrendingSource = TrendingSourceNone
	}
	if c.TasteGraph.TrendingTake <= 0 {
		c.TasteGraph.TrendingTake = 5
	}
	if c.Narrator.Provider == "" {
		c.Narrator.Provider = "openai"
	}
	if c.Narrator.Model == "" {
		c.Narrator.Model = "gpt-4o-mini"
	}
	if c.Narrator.MaxTokens <= 0 {
		c.Narrator.MaxTokens = 300
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		return name
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

// describe renders a field error using the yaml path of the field, e.g. "tastegraph.base_url".
func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "url":
		return fmt.Sprintf("%s must be a valid URL, got %q", path, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", path, fe.Param(), fe.Value())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", path, fe.Param(), fe.Value())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", path, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", path, fe.Tag())
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
