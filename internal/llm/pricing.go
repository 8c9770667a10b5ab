package llm

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"os"
)

type PriceEntry struct {
	Provider string  `json:"provider"`
	Input    float64 `json:"input"`
	Output   float64 `json:"output"`
}

//go:embed pricing.json
var defaultPricing []byte

// Pricing is USD per million tokens, keyed by model id.
var Pricing map[string]PriceEntry

func init() {
	Pricing = loadPricing(os.Getenv("PRICING_JSON_PATH"))
}

func loadPricing(overridePath string) map[string]PriceEntry {
	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err == nil {
			if models, err := parsePricing(data); err == nil && len(models) > 0 {
				return models
			}
		}
		slog.Warn("pricing override unusable, using built-in table", "path", overridePath)
	}
	models, err := parsePricing(defaultPricing)
	if err != nil {
		slog.Warn("built-in pricing table unreadable, costs will be $0.00", "error", err)
		return map[string]PriceEntry{}
	}
	return models
}

func parsePricing(data []byte) (map[string]PriceEntry, error) {
	var raw struct {
		Models map[string]PriceEntry `json:"models"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw.Models, nil
}

func CalculateCost(model string, inputTokens, outputTokens int) float64 {
	entry, ok := Pricing[model]
	if !ok {
		return 0.0
	}
	return (float64(inputTokens) * entry.Input / 1_000_000) +
		(float64(outputTokens) * entry.Output / 1_000_000)
}

var ProviderServers = map[string]string{
	"openai":    "api.openai.com",
	"anthropic": "api.anthropic.com",
	"google":    "generativelanguage.googleapis.com",
	"ollama":    "localhost",
}

var ProviderPorts = map[string]int{
	"openai":    443,
	"anthropic": 443,
	"google":    443,
	"ollama":    11434,
}
