package routes

import (
	"net/http"

	"parcel-tracker/internal/middleware"
	"parcel-tracker/internal/prediction"
	"parcel-tracker/internal/telemetry"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	ServiceName string
	Parcels     ParcelReader
	Predictor   Predictor
	Sequencer   *prediction.Sequencer
	Metrics     *telemetry.GenAIMetrics
	// Gatherer backs /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.OTelHTTP(d.ServiceName))
	r.Use(middleware.RequestLogger)

	r.Get("/api/health", HealthHandler(d.ServiceName))
	r.Get("/api/parcels", ListParcelsHandler(d.Parcels))
	r.Get("/api/parcels/{id}", GetParcelHandler(d.Parcels))
	r.Post("/api/parcels/{id}/prediction", PredictionHandler(d.Parcels, d.Predictor, d.Sequencer, d.Metrics))
	r.Get("/api/stats", StatsHandler(d.Parcels))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}
