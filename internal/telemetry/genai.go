package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type GenAIMetrics struct {
	TokenUsage        metric.Float64Histogram
	OperationDuration metric.Float64Histogram
	Cost              metric.Float64Counter
	FallbackCount     metric.Int64Counter
	ErrorCount        metric.Int64Counter

	PredictionDuration metric.Float64Histogram
	DelayRisk          metric.Int64Histogram
	FailureCount       metric.Int64Counter
	SupersededCount    metric.Int64Counter
}

func NewGenAIMetrics(m metric.Meter) (*GenAIMetrics, error) {
	tokenUsage, err := m.Float64Histogram("gen_ai.client.token.usage",
		metric.WithUnit("{token}"),
		metric.WithDescription("Number of tokens used per LLM call"),
	)
	if err != nil {
		return nil, err
	}

	operationDuration, err := m.Float64Histogram("gen_ai.client.operation.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Wall-clock duration of LLM API call"),
	)
	if err != nil {
		return nil, err
	}

	cost, err := m.Float64Counter("gen_ai.client.cost",
		metric.WithUnit("usd"),
		metric.WithDescription("Cumulative cost of LLM calls in USD"),
	)
	if err != nil {
		return nil, err
	}

	fallbackCount, err := m.Int64Counter("gen_ai.client.fallback.count",
		metric.WithUnit("{fallback}"),
		metric.WithDescription("Number of predictions answered with the static fallback"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := m.Int64Counter("gen_ai.client.error.count",
		metric.WithUnit("{error}"),
		metric.WithDescription("Number of LLM call errors"),
	)
	if err != nil {
		return nil, err
	}

	predictionDuration, err := m.Float64Histogram("parcel.prediction.duration",
		metric.WithUnit("s"),
		metric.WithDescription("End-to-end duration of a delivery risk prediction"),
	)
	if err != nil {
		return nil, err
	}

	delayRisk, err := m.Int64Histogram("parcel.prediction.delay_risk",
		metric.WithUnit("%"),
		metric.WithDescription("Delay risk returned to callers"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100),
	)
	if err != nil {
		return nil, err
	}

	failureCount, err := m.Int64Counter("parcel.prediction.failure.count",
		metric.WithUnit("{failure}"),
		metric.WithDescription("Prediction failures by kind"),
	)
	if err != nil {
		return nil, err
	}

	supersededCount, err := m.Int64Counter("parcel.prediction.superseded.count",
		metric.WithUnit("{prediction}"),
		metric.WithDescription("Prediction results discarded because a newer request replaced them"),
	)
	if err != nil {
		return nil, err
	}

	return &GenAIMetrics{
		TokenUsage:         tokenUsage,
		OperationDuration:  operationDuration,
		Cost:               cost,
		FallbackCount:      fallbackCount,
		ErrorCount:         errorCount,
		PredictionDuration: predictionDuration,
		DelayRisk:          delayRisk,
		FailureCount:       failureCount,
		SupersededCount:    supersededCount,
	}, nil
}

type RecordParams struct {
	Provider     string
	Model        string
	Stage        string
	InputTokens  int
	OutputTokens int
	DurationSec  float64
	CostUSD      float64
}

func (g *GenAIMetrics) RecordGenAIMetrics(ctx context.Context, p RecordParams) {
	baseAttrs := []attribute.KeyValue{
		attribute.String("gen_ai.operation.name", "chat"),
		attribute.String("gen_ai.provider.name", p.Provider),
		attribute.String("gen_ai.request.model", p.Model),
	}
	if p.Stage != "" {
		baseAttrs = append(baseAttrs, attribute.String("parcel.stage", p.Stage))
	}
	attrs := metric.WithAttributes(baseAttrs...)

	g.TokenUsage.Record(ctx, float64(p.InputTokens),
		attrs,
		metric.WithAttributes(attribute.String("gen_ai.token.type", "input")),
	)
	g.TokenUsage.Record(ctx, float64(p.OutputTokens),
		attrs,
		metric.WithAttributes(attribute.String("gen_ai.token.type", "output")),
	)
	g.OperationDuration.Record(ctx, p.DurationSec, attrs)
	g.Cost.Add(ctx, p.CostUSD, attrs)
}

func WithProviderModel(provider, model string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("gen_ai.provider.name", provider),
		attribute.String("gen_ai.request.model", model),
	)
}

func WithFailureKind(kind string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("parcel.prediction.failure_kind", kind))
}

func WithBoolAttr(key string, val bool) metric.MeasurementOption {
	return metric.WithAttributes(attribute.Bool(key, val))
}
