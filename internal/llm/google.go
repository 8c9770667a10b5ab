package llm

import (
	openai "github.com/sashabaranov/go-openai"
)

const googleBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// NewGoogleProvider reaches Gemini through its OpenAI-compatible endpoint, which
// honours response_format json_schema.
func NewGoogleProvider(apiKey string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = googleBaseURL
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), name: "google"}
}
