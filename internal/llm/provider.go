package llm

import (
	"fmt"

	"parcel-tracker/internal/config"
)

// NewProvider builds the provider named by cfg.PredictionProvider. A missing API
// key is not an error here: the first call fails and the caller's fallback applies.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.PredictionProvider {
	case "google":
		return NewGoogleProvider(cfg.GoogleAPIKey), nil
	case "openai":
		return NewOpenAIProvider(cfg.OpenAIAPIKey), nil
	case "anthropic":
		return NewAnthropicProvider(cfg.AnthropicAPIKey), nil
	case "ollama":
		return NewOllamaProvider(cfg.OllamaBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown prediction provider %q", cfg.PredictionProvider)
	}
}

// APIKey returns the credential the configured provider will use.
func APIKey(cfg *config.Config) string {
	switch cfg.PredictionProvider {
	case "google":
		return cfg.GoogleAPIKey
	case "openai":
		return cfg.OpenAIAPIKey
	case "anthropic":
		return cfg.AnthropicAPIKey
	}
	return ""
}
