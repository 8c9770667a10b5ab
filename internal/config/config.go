package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               string
	PredictionProvider string
	PredictionModel    string
	OllamaBaseURL      string
	OpenAIAPIKey       string
	GoogleAPIKey       string
	AnthropicAPIKey    string
	OTelServiceName    string
	OTelEndpoint       string
	ScoutEnvironment   string
	LogLevel           string
	DefaultTemperature float64
	DefaultMaxTokens   int
	LookupLatency      time.Duration
	ListLatency        time.Duration
}

func Load() *Config {
	return &Config{
		Port:               envOr("APP_PORT", "8080"),
		PredictionProvider: envOr("PREDICTION_PROVIDER", "google"),
		PredictionModel:    envOr("PREDICTION_MODEL", "gemini-3-pro-preview"),
		OllamaBaseURL:      envOr("OLLAMA_BASE_URL", "http://localhost:11434"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:       envOr("GOOGLE_API_KEY", os.Getenv("API_KEY")),
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		OTelServiceName:    envOr("OTEL_SERVICE_NAME", "parcel-tracker"),
		OTelEndpoint:       envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		ScoutEnvironment:   envOr("SCOUT_ENVIRONMENT", "development"),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		DefaultTemperature: envOrFloat("DEFAULT_TEMPERATURE", 0.2),
		DefaultMaxTokens:   envOrInt("DEFAULT_MAX_TOKENS", 1024),
		LookupLatency:      envOrDuration("STORE_LOOKUP_LATENCY", 500*time.Millisecond),
		ListLatency:        envOrDuration("STORE_LIST_LATENCY", 600*time.Millisecond),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envOrFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// envOrDuration accepts Go duration strings ("250ms", "1s"). Negative values are rejected.
func envOrDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}
