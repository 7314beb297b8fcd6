package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env  string
	Port string

	// Provider selection and credentials
	SearchProvider  string
	BraveBaseURL    string
	BraveAPIKey     string
	SerperBaseURL   string
	SerperAPIKey    string
	TavilyBaseURL   string
	TavilyAPIKey    string
	ProviderTimeout int // seconds
	ProviderRate    float64
	ProviderBurst   int

	// Defaults handed to the pipeline; callers may override per request.
	DefaultCostMode  string
	MaxProviderCalls int

	// Escalation thresholds
	EscalationMinResults         int
	EscalationMinPriorityResults int
	EscalationMinDistinctDomains int

	// Result cache
	CacheSize   int
	CacheTTLMin int
	CacheDSN    string // when set, a shared Postgres cache replaces the in-process LRU
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9040"),

		SearchProvider:  getEnv("SEARCH_PROVIDER", "brave"),
		BraveBaseURL:    getEnv("BRAVE_BASE_URL", "https://api.search.brave.com"),
		BraveAPIKey:     getSecret("BRAVE_API_KEY", "BRAVE_API_KEY_FILE", ""),
		SerperBaseURL:   getEnv("SERPER_BASE_URL", "https://google.serper.dev"),
		SerperAPIKey:    getSecret("SERPER_API_KEY", "SERPER_API_KEY_FILE", ""),
		TavilyBaseURL:   getEnv("TAVILY_BASE_URL", "https://api.tavily.com"),
		TavilyAPIKey:    getSecret("TAVILY_API_KEY", "TAVILY_API_KEY_FILE", ""),
		ProviderTimeout: getEnvInt("SEARCH_PROVIDER_TIMEOUT", 15),
		ProviderRate:    getEnvFloat("SEARCH_PROVIDER_RATE", 2.0),
		ProviderBurst:   getEnvInt("SEARCH_PROVIDER_BURST", 2),

		DefaultCostMode:  getEnv("SEARCH_DEFAULT_COST_MODE", "economy"),
		MaxProviderCalls: getEnvInt("SEARCH_MAX_PROVIDER_CALLS", 0),

		EscalationMinResults:         getEnvInt("ESCALATION_MIN_RESULTS", 6),
		EscalationMinPriorityResults: getEnvInt("ESCALATION_MIN_PRIORITY_RESULTS", 3),
		EscalationMinDistinctDomains: getEnvInt("ESCALATION_MIN_DISTINCT_DOMAINS", 3),

		CacheSize:   getEnvInt("RESULT_CACHE_SIZE", 256),
		CacheTTLMin: getEnvInt("RESULT_CACHE_TTL_MINUTES", 30),
		CacheDSN:    getSecret("RESULT_CACHE_DSN", "RESULT_CACHE_DSN_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
