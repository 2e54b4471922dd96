package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	APIPrefix   string `json:"api_prefix"`
	LogLevel    string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Auth
	APIKeyHeader string   `json:"api_key_header"`
	APIKeys      []string `json:"api_keys"`
	EnableAuth   bool     `json:"enable_auth"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// LLM
	Provider         string `json:"provider"` // "openai" or "anthropic"
	Model            string `json:"model"`
	OpenAIAPIKey     string `json:"openai_api_key"`
	OpenAIBaseURL    string `json:"openai_base_url"` // override for Azure / custom proxy
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AgentTimeout     int    `json:"agent_timeout"`
	BatchConcurrency int    `json:"batch_concurrency"`

	// Google Custom Search
	GoogleAPIKey         string `json:"google_api_key"`
	GoogleSearchEngineID string `json:"google_search_engine_id"`

	// Security
	EnablePIIDetection bool     `json:"enable_pii_detection"`
	PIIKeywords        []string `json:"pii_keywords"`
	EnableAuditLogging bool     `json:"enable_audit_logging"`

	// Postgres run history
	DatabaseURL string `json:"database_url"`

	// Elasticsearch research archive
	ElasticsearchEnabled     bool   `json:"elasticsearch_enabled"`
	ElasticsearchHost        string `json:"elasticsearch_host"`
	ElasticsearchPort        int    `json:"elasticsearch_port"`
	ElasticsearchScheme      string `json:"elasticsearch_scheme"`
	ElasticsearchUser        string `json:"elasticsearch_user"`
	ElasticsearchPassword    string `json:"elasticsearch_password"`
	ElasticsearchVerifyCerts bool   `json:"elasticsearch_verify_certs"`
	ElasticsearchMaxRetries  int    `json:"elasticsearch_max_retries"`
	ElasticsearchTimeout     int    `json:"elasticsearch_timeout"`
	ArchiveIndex             string `json:"archive_index"`

	// Tracing
	AtlaInsightsToken string `json:"atla_insights_token"`
	TraceEndpoint     string `json:"trace_endpoint"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:                     DefaultHost,
		Port:                     DefaultPort,
		Environment:              DefaultEnvironment,
		APIPrefix:                DefaultAPIPrefix,
		LogLevel:                 DefaultLogLevel,
		CORSOrigins:              DefaultCORSOrigins,
		APIKeyHeader:             "X-API-Key",
		EnableAuth:               true,
		RateLimitPerMinute:       DefaultRateLimitPerMinute,
		Provider:                 DefaultProvider,
		Model:                    DefaultOpenAIModel,
		AgentTimeout:             DefaultAgentTimeout,
		BatchConcurrency:         DefaultBatchConcurrency,
		EnablePIIDetection:       true,
		PIIKeywords:              DefaultPIIKeywords,
		EnableAuditLogging:       true,
		ElasticsearchPort:        DefaultElasticsearchPort,
		ElasticsearchScheme:      DefaultElasticsearchScheme,
		ElasticsearchVerifyCerts: true,
		ElasticsearchMaxRetries:  DefaultElasticsearchMaxRetries,
		ElasticsearchTimeout:     DefaultElasticsearchTimeout,
		ArchiveIndex:             DefaultArchiveIndex,
		TraceEndpoint:            DefaultTraceEndpoint,
	}

	// Load from JSON config file if specified
	if path := getEnv("SCOUT_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("SCOUT_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("SCOUT_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("SCOUT_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("SCOUT_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("SCOUT_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
	}
	if v := getEnv("SCOUT_PROVIDER", ""); v != "" {
		cfg.Provider = v
	}
	if v := getEnv("SCOUT_MODEL", ""); v != "" {
		cfg.Model = v
	}
	if v := getEnv("OPENAI_API_KEY", ""); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := getEnv("OPENAI_BASE_URL", ""); v != "" {
		cfg.OpenAIBaseURL = v
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("GOOGLE_API_KEY", ""); v != "" {
		cfg.GoogleAPIKey = v
	}
	if v := getEnv("GOOGLE_SEARCH_ENGINE_ID", ""); v != "" {
		cfg.GoogleSearchEngineID = v
	}
	if v := getEnv("ATLA_INSIGHTS_TOKEN", ""); v != "" {
		cfg.AtlaInsightsToken = v
	}
	if v := getEnv("DATABASE_URL", ""); v != "" {
		cfg.DatabaseURL = v
	}
	if v := getEnv("ELASTICSEARCH_ENABLED", ""); v != "" {
		cfg.ElasticsearchEnabled = v == "true" || v == "1"
	}
	if v := getEnv("ELASTICSEARCH_HOST", ""); v != "" {
		cfg.ElasticsearchHost = v
	}
	if v := getEnv("ELASTICSEARCH_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.ElasticsearchPort = p
		}
	}
	if v := getEnv("ELASTICSEARCH_SCHEME", ""); v != "" {
		cfg.ElasticsearchScheme = v
	}
	if v := getEnv("ELASTICSEARCH_USER", ""); v != "" {
		cfg.ElasticsearchUser = v
	}
	if v := getEnv("ELASTICSEARCH_PASSWORD", ""); v != "" {
		cfg.ElasticsearchPassword = v
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("SCOUT_AGENT_TIMEOUT", ""); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			cfg.AgentTimeout = t
		}
	}
	if v := getEnv("SCOUT_BATCH_CONCURRENCY", ""); v != "" {
		if c, err := strconv.Atoi(v); err == nil && c > 0 {
			cfg.BatchConcurrency = c
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
