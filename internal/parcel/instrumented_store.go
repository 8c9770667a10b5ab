package parcel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedStore wraps a Store with a span and metrics per operation.
type InstrumentedStore struct {
	*Store
	tracer trace.Tracer

	operations        metric.Int64Counter
	operationDuration metric.Float64Histogram
}

func NewInstrumentedStore(store *Store, tracer trace.Tracer, meter metric.Meter) (*InstrumentedStore, error) {
	operations, err := meter.Int64Counter("parcel_store_operations_total",
		metric.WithDescription("Total number of parcel store operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("parcel_store_operation_duration_seconds",
		metric.WithDescription("Duration of parcel store operations, simulated latency included"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &InstrumentedStore{
		Store:             store,
		tracer:            tracer,
		operations:        operations,
		operationDuration: operationDuration,
	}, nil
}

func (s *InstrumentedStore) FindByID(ctx context.Context, id string) (Parcel, bool, error) {
	ctx, span := s.tracer.Start(ctx, "parcel_store.find_by_id",
		trace.WithAttributes(attribute.String("parcel.id", id)))
	defer span.End()

	start := time.Now()
	p, found, err := s.Store.FindByID(ctx, id)

	status := "found"
	switch {
	case err != nil:
		status = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case !found:
		status = "not_found"
		span.AddEvent("parcel_not_found")
	default:
		span.SetAttributes(attribute.String("parcel.status", string(p.Status)))
		span.AddEvent("parcel_found")
	}

	s.record(ctx, "find_by_id", status, start)
	return p, found, err
}

func (s *InstrumentedStore) List(ctx context.Context) ([]Parcel, error) {
	ctx, span := s.tracer.Start(ctx, "parcel_store.list")
	defer span.End()

	start := time.Now()
	parcels, err := s.Store.List(ctx)

	status := "success"
	if err != nil {
		status = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("parcel.count", len(parcels)))
	}

	s.record(ctx, "list", status, start)
	return parcels, err
}

// Stats goes through the instrumented List so the nested span shows the latency.
func (s *InstrumentedStore) Stats(ctx context.Context) (Stats, error) {
	ctx, span := s.tracer.Start(ctx, "parcel_store.stats")
	defer span.End()

	start := time.Now()
	parcels, err := s.List(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.record(ctx, "stats", "failed", start)
		return Stats{}, err
	}

	st := Summarize(parcels)
	span.SetAttributes(
		attribute.Int("parcel.stats.total", st.Total),
		attribute.Int("parcel.stats.delivered", st.Delivered),
		attribute.Int("parcel.stats.in_transit", st.InTransit),
		attribute.Int("parcel.stats.delayed", st.Delayed),
	)
	s.record(ctx, "stats", "success", start)
	return st, nil
}

func (s *InstrumentedStore) record(ctx context.Context, op, status string, start time.Time) {
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("status", status),
	)
	s.operations.Add(ctx, 1, attrs)
	s.operationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}
