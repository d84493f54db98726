package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Supported LLM providers.
const (
	ProviderCerebras = "cerebras"
	ProviderOpenAI   = "openai"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Search  SearchConfig  `yaml:"search"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string        `yaml:"host" envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port           int           `yaml:"port" envconfig:"SERVER_PORT" default:"8787"`
	APIKey         string        `yaml:"api_key" envconfig:"API_KEY"`
	ReadTimeout    time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"SERVER_REQUEST_TIMEOUT" default:"4m"`
}

// LLMConfig holds chat-completion provider configuration.
type LLMConfig struct {
	Provider    string  `yaml:"provider" envconfig:"LLM_PROVIDER" default:"cerebras"`
	APIKey      string  `yaml:"api_key" envconfig:"LLM_API_KEY"`
	BaseURL     string  `yaml:"base_url" envconfig:"LLM_BASE_URL" default:"https://api.cerebras.ai/v1"`
	Model       string  `yaml:"model" envconfig:"LLM_MODEL" default:"llama3.1-8b"`
	Temperature float32 `yaml:"temperature" envconfig:"LLM_TEMPERATURE" default:"0.7"`
	MaxTokens   int     `yaml:"max_tokens" envconfig:"LLM_MAX_TOKENS" default:"8192"`
	// PromptMaxTokens caps research-prompt generation, which needs less room.
	PromptMaxTokens int `yaml:"prompt_max_tokens" envconfig:"LLM_PROMPT_MAX_TOKENS" default:"4000"`
	// Timeout of zero leaves the HTTP client unbounded; the request context still applies.
	Timeout time.Duration `yaml:"timeout" envconfig:"LLM_TIMEOUT"`
}

// SearchConfig holds web search configuration.
type SearchConfig struct {
	APIKey     string        `yaml:"api_key" envconfig:"SERPAPI_API_KEY"`
	BaseURL    string        `yaml:"base_url" envconfig:"SERPAPI_BASE_URL" default:"https://serpapi.com"`
	Engine     string        `yaml:"engine" envconfig:"SERPAPI_ENGINE" default:"google"`
	NumResults int           `yaml:"num_results" envconfig:"SERPAPI_NUM_RESULTS" default:"10"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"SERPAPI_TIMEOUT"`
	Cache      CacheConfig   `yaml:"cache"`
}

// CacheConfig holds the optional search result cache configuration.
type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr" envconfig:"SEARCH_CACHE_REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" envconfig:"SEARCH_CACHE_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" envconfig:"SEARCH_CACHE_REDIS_DB"`
	TTL           time.Duration `yaml:"ttl" envconfig:"SEARCH_CACHE_TTL" default:"1h"`
}

// Enabled reports whether a cache backend is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	Driver      string `yaml:"driver" envconfig:"STORAGE_DRIVER" default:"sqlite"`
	SQLitePath  string `yaml:"sqlite_path" envconfig:"STORAGE_SQLITE_PATH" default:"/data/scriptforge.db"`
	PostgresURL string `yaml:"postgres_url" envconfig:"DATABASE_URL"`
	MaxConns    int32  `yaml:"max_conns" envconfig:"DATABASE_MAX_CONNS" default:"10"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from file and environment variables.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	// Older deployments only set the provider-specific name.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("CEREBRAS_API_KEY")
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Server.APIKey == "" {
		return fmt.Errorf("API_KEY is required")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	switch c.LLM.Provider {
	case ProviderCerebras, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("LLM_BASE_URL is required")
	}
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("STORAGE_SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
