package prediction

import (
	"context"
	"errors"
	"time"

	"parcel-tracker/internal/llm"
	"parcel-tracker/internal/logging"
	"parcel-tracker/internal/parcel"
	"parcel-tracker/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Predictor asks a language model for a delivery risk assessment. Every
// failure is classified, logged and counted, then answered with Fallback.
type Predictor struct {
	LLM         *llm.Client
	Tracer      trace.Tracer
	Metrics     *telemetry.GenAIMetrics
	Model       string
	Temperature float64
	MaxTokens   int
}

func (p *Predictor) PredictDeliveryRisk(ctx context.Context, pc parcel.Parcel) Result {
	start := time.Now()

	ctx, span := p.Tracer.Start(ctx, "prediction predict_delivery_risk")
	defer span.End()

	span.SetAttributes(
		attribute.String("parcel.id", pc.ID),
		attribute.String("parcel.status", string(pc.Status)),
	)

	result, err := p.predict(ctx, pc)
	fallback := err != nil
	if fallback {
		p.recordFailure(ctx, span, pc, err)
		result = Fallback(pc)
	}

	span.SetAttributes(
		attribute.Int("parcel.prediction.delay_risk", result.DelayRisk),
		attribute.Bool("parcel.prediction.fallback", fallback),
	)

	if p.Metrics != nil {
		attr := telemetry.WithBoolAttr("parcel.prediction.fallback", fallback)
		p.Metrics.PredictionDuration.Record(ctx, time.Since(start).Seconds(), attr)
		p.Metrics.DelayRisk.Record(ctx, int64(result.DelayRisk), attr)
	}

	return result
}

func (p *Predictor) predict(ctx context.Context, pc parcel.Parcel) (Result, error) {
	schema := Schema()
	resp, err := p.LLM.Generate(ctx, llm.GenerateRequest{
		Model:       p.Model,
		System:      systemPrompt,
		Prompt:      BuildPrompt(pc),
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		Stage:       "predict",
		Schema:      &schema,
		SchemaName:  schemaName,
	})
	if err != nil {
		return Result{}, &Failure{Kind: FailureProvider, Err: err}
	}
	return parseResult(resp.Content)
}

func (p *Predictor) recordFailure(ctx context.Context, span trace.Span, pc parcel.Parcel, err error) {
	kind := KindOf(err)
	args := []any{
		"parcel_id", pc.ID,
		"failure_kind", string(kind),
		"model", p.Model,
		"error", err.Error(),
	}
	if kind == FailureProvider {
		args = append(args, "error_category", llm.ClassifyError(errors.Unwrap(err)))
	}
	logging.Warn(ctx, "delivery risk prediction failed, serving fallback", args...)

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("parcel.prediction.failure_kind", string(kind)))

	if p.Metrics != nil {
		providerModel := telemetry.WithProviderModel(p.LLM.ProviderName, p.Model)
		p.Metrics.FailureCount.Add(ctx, 1, providerModel, telemetry.WithFailureKind(string(kind)))
		p.Metrics.FallbackCount.Add(ctx, 1, providerModel)
	}
}
