package middleware

import (
	"context"
	"net/http"

	"parcel-tracker/internal/logging"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses an inbound X-Request-ID or mints one, echoes it on the
// response and stores it in the context for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.New().String()
		}
		ctx := context.WithValue(r.Context(), logging.RequestIDKey, requestID)
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the id stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(logging.RequestIDKey).(string)
	return id
}
