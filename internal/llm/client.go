package llm

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"parcel-tracker/internal/telemetry"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type GenerateRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	Stage       string
	// Schema, when set, asks the provider for a JSON object conforming to it.
	Schema     *jsonschema.Definition
	SchemaName string
}

type GenerateResponse struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	FinishReason string
}

type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Name() string
}

// Client performs exactly one provider call per Generate. Recovery from a
// failed call is left to the caller.
type Client struct {
	Provider     Provider
	ProviderName string
	Tracer       trace.Tracer
	Metrics      *telemetry.GenAIMetrics
}

func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	spanName := "gen_ai.chat " + req.Model
	start := time.Now()

	ctx, span := c.Tracer.Start(ctx, spanName)
	defer span.End()

	span.SetAttributes(
		attribute.String("gen_ai.operation.name", "chat"),
		attribute.String("gen_ai.provider.name", c.ProviderName),
		attribute.String("gen_ai.request.model", req.Model),
		attribute.String("server.address", ProviderServers[c.ProviderName]),
		attribute.Int("server.port", ProviderPorts[c.ProviderName]),
		attribute.Float64("gen_ai.request.temperature", req.Temperature),
		attribute.Int("gen_ai.request.max_tokens", req.MaxTokens),
	)
	if req.Stage != "" {
		span.SetAttributes(attribute.String("parcel.stage", req.Stage))
	}
	if req.Schema != nil {
		span.SetAttributes(attribute.String("gen_ai.output.type", "json"))
	}

	span.AddEvent("gen_ai.user.message", trace.WithAttributes(
		attribute.String("gen_ai.prompt", truncate(req.Prompt, 1000)),
	))
	if req.System != "" {
		span.AddEvent("gen_ai.user.message", trace.WithAttributes(
			attribute.String("gen_ai.system_instructions", truncate(req.System, 500)),
		))
	}

	resp, err := c.Provider.Generate(ctx, req)
	duration := time.Since(start).Seconds()

	if err != nil {
		category := ClassifyError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.type", category))
		if c.Metrics != nil {
			c.Metrics.ErrorCount.Add(ctx, 1,
				telemetry.WithProviderModel(c.ProviderName, req.Model),
				metric.WithAttributes(attribute.String("error.type", category)),
			)
		}
		return nil, err
	}

	resp.CostUSD = CalculateCost(resp.Model, resp.InputTokens, resp.OutputTokens)

	span.SetAttributes(
		attribute.String("gen_ai.response.model", resp.Model),
		attribute.Int("gen_ai.usage.input_tokens", resp.InputTokens),
		attribute.Int("gen_ai.usage.output_tokens", resp.OutputTokens),
		attribute.Float64("gen_ai.usage.cost_usd", resp.CostUSD),
	)
	if resp.FinishReason != "" {
		span.SetAttributes(attribute.String("gen_ai.response.finish_reasons", resp.FinishReason))
	}

	span.AddEvent("gen_ai.assistant.message", trace.WithAttributes(
		attribute.String("gen_ai.completion", truncate(resp.Content, 2000)),
	))

	if c.Metrics != nil {
		c.Metrics.RecordGenAIMetrics(ctx, telemetry.RecordParams{
			Provider:     c.ProviderName,
			Model:        resp.Model,
			Stage:        req.Stage,
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
			DurationSec:  duration,
			CostUSD:      resp.CostUSD,
		})
	}

	return resp, nil
}

// ClassifyError maps a provider error to a coarse category. Typed SDK errors
// are classified by HTTP status; anything else falls back to message matching.
func ClassifyError(err error) string {
	if err == nil {
		return "unknown_error"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if c := classifyStatus(apiErr.HTTPStatusCode); c != "" {
			return c
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if c := classifyStatus(reqErr.HTTPStatusCode); c != "" {
			return c
		}
	}
	var antErr *anthropic.Error
	if errors.As(err, &antErr) {
		if c := classifyStatus(antErr.StatusCode); c != "" {
			return c
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "rate limit", "429", "too many requests"):
		return "rate_limit"
	case containsAny(msg, "timeout", "deadline"):
		return "timeout"
	case containsAny(msg, "401", "403", "unauthorized", "forbidden", "auth", "api key"):
		return "auth_error"
	case containsAny(msg, "400", "422", "bad request", "invalid"):
		return "invalid_request"
	case containsAny(msg, "500", "502", "503", "504", "internal server error", "unavailable"):
		return "server_error"
	case containsAny(msg, "connect", "connection", "dns", "no such host", "eof"):
		return "network_error"
	}
	return "unknown_error"
}

func classifyStatus(code int) string {
	switch {
	case code == 429:
		return "rate_limit"
	case code == 401 || code == 403:
		return "auth_error"
	case code == 408 || code == 504:
		return "timeout"
	case code >= 500:
		return "server_error"
	case code >= 400:
		return "invalid_request"
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
