package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger
	logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { logger = prev })
	return &buf
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestWithContextAddsRequestAndTraceIDs(t *testing.T) {
	buf := captureDefault(t)

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	ctx = context.WithValue(ctx, RequestIDKey, "req-42")

	Warn(ctx, "prediction failed", "parcel_id", "PKG-1001")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "prediction failed", line["msg"])
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, "PKG-1001", line["parcel_id"])
	assert.Equal(t, span.SpanContext().TraceID().String(), line["traceId"])
}

func TestWithContextWithoutSpan(t *testing.T) {
	buf := captureDefault(t)

	Info(context.Background(), "hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.NotContains(t, line, "traceId")
	assert.NotContains(t, line, "request_id")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	l := slog.New(h).With("k", "v")

	l.Info("info line")
	l.Error("error line")

	assert.Contains(t, a.String(), "info line")
	assert.Contains(t, a.String(), "error line")
	assert.NotContains(t, b.String(), "info line")
	assert.Contains(t, b.String(), `"k":"v"`)
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("exporter down")
}

func TestMultiHandlerReachesEverySink(t *testing.T) {
	var buf bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		failingHandler{slog.NewJSONHandler(io.Discard, nil)},
		slog.NewJSONHandler(&buf, nil),
	}}

	err := slog.New(h).Handler().Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still logged", 0))
	assert.ErrorContains(t, err, "exporter down")
	assert.Contains(t, buf.String(), "still logged")
}
