package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"parcel-tracker/internal/logging"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

// writeStoreError answers a failed store call. The store only fails when the
// request context ends during its simulated latency.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logging.Debug(r.Context(), "request ended during parcel lookup", "error", err.Error())
		writeError(w, http.StatusServiceUnavailable, "request canceled")
		return
	}
	logging.Error(r.Context(), "parcel store failed", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal error")
}
