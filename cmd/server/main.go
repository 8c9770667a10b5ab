package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcel-tracker/internal/config"
	"parcel-tracker/internal/llm"
	"parcel-tracker/internal/logging"
	"parcel-tracker/internal/parcel"
	"parcel-tracker/internal/prediction"
	"parcel-tracker/internal/routes"
	"parcel-tracker/internal/telemetry"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	// Telemetry
	tp, err := telemetry.Init(ctx, cfg.OTelServiceName, cfg.OTelEndpoint, cfg.ScoutEnvironment)
	if err != nil {
		log.Fatalf("Failed to init telemetry: %v", err)
	}
	logging.Init(cfg.OTelServiceName, cfg.ScoutEnvironment, cfg.LogLevel)

	metrics, err := telemetry.NewGenAIMetrics(tp.Meter)
	if err != nil {
		log.Fatalf("Failed to init metrics: %v", err)
	}

	// Parcel store
	store, err := parcel.NewStore(parcel.Seed(),
		parcel.WithLookupLatency(cfg.LookupLatency),
		parcel.WithListLatency(cfg.ListLatency),
	)
	if err != nil {
		log.Fatalf("Failed to load parcels: %v", err)
	}
	parcels, err := parcel.NewInstrumentedStore(store, tp.Tracer, tp.Meter)
	if err != nil {
		log.Fatalf("Failed to init store metrics: %v", err)
	}
	prometheus.MustRegister(parcel.NewStatusCollector(store))

	// Prediction
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to init prediction provider: %v", err)
	}
	if cfg.PredictionProvider != "ollama" && llm.APIKey(cfg) == "" {
		logging.Warn(ctx, "no API key configured, every prediction will use the fallback",
			"provider", cfg.PredictionProvider)
	}

	predictor := &prediction.Predictor{
		LLM: &llm.Client{
			Provider:     provider,
			ProviderName: provider.Name(),
			Tracer:       tp.Tracer,
			Metrics:      metrics,
		},
		Tracer:      tp.Tracer,
		Metrics:     metrics,
		Model:       cfg.PredictionModel,
		Temperature: cfg.DefaultTemperature,
		MaxTokens:   cfg.DefaultMaxTokens,
	}

	sequencer := prediction.NewSequencer()

	// Router
	handler := routes.NewRouter(routes.Deps{
		ServiceName: cfg.OTelServiceName,
		Parcels:     parcels,
		Predictor:   predictor,
		Sequencer:   sequencer,
		Metrics:     metrics,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Info(ctx, "starting server",
			"addr", srv.Addr,
			"provider", cfg.PredictionProvider,
			"model", cfg.PredictionModel,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logging.Info(ctx, "shutting down", "predictions_sequenced", sequencer.Issued())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Printf("Telemetry shutdown error: %v", err)
	}
}
