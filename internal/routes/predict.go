package routes

import (
	"context"
	"net/http"

	"parcel-tracker/internal/logging"
	"parcel-tracker/internal/parcel"
	"parcel-tracker/internal/prediction"
	"parcel-tracker/internal/telemetry"

	"github.com/go-chi/chi/v5"
)

// SessionHeader names the client session a prediction belongs to. Requests
// without it are never considered superseded.
const SessionHeader = "X-Session-ID"

type Predictor interface {
	PredictDeliveryRisk(ctx context.Context, p parcel.Parcel) prediction.Result
}

func PredictionHandler(parcels ParcelReader, predictor Predictor, seq *prediction.Sequencer, metrics *telemetry.GenAIMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var ticket prediction.Ticket
		session := r.Header.Get(SessionHeader)
		sequenced := session != "" && seq != nil
		if sequenced {
			ticket = seq.Begin(session)
		}
		finish := func() bool { return !sequenced || seq.Finish(ticket) }

		p, found, err := parcels.FindByID(ctx, chi.URLParam(r, "id"))
		if err != nil {
			finish()
			writeStoreError(w, r, err)
			return
		}
		if !found {
			finish()
			writeError(w, http.StatusNotFound, "parcel not found")
			return
		}

		// A newer request may have arrived during the lookup; skip the model call.
		if sequenced && !seq.Latest(ticket) {
			finish()
			rejectSuperseded(w, r, p.ID, session, ticket, metrics)
			return
		}

		result := predictor.PredictDeliveryRisk(ctx, p)

		if !finish() {
			rejectSuperseded(w, r, p.ID, session, ticket, metrics)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func rejectSuperseded(w http.ResponseWriter, r *http.Request, parcelID, session string, ticket prediction.Ticket, metrics *telemetry.GenAIMetrics) {
	ctx := r.Context()
	logging.Info(ctx, "discarding superseded prediction",
		"parcel_id", parcelID,
		"session", session,
		"ticket", ticket.Seq,
	)
	if metrics != nil {
		metrics.SupersededCount.Add(ctx, 1)
	}
	writeError(w, http.StatusConflict, "prediction superseded by a newer request")
}
