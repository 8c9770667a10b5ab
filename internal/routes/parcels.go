package routes

import (
	"context"
	"net/http"

	"parcel-tracker/internal/parcel"

	"github.com/go-chi/chi/v5"
)

// ParcelReader is the read side of the parcel store.
type ParcelReader interface {
	FindByID(ctx context.Context, id string) (parcel.Parcel, bool, error)
	List(ctx context.Context) ([]parcel.Parcel, error)
	Stats(ctx context.Context) (parcel.Stats, error)
}

func ListParcelsHandler(parcels ParcelReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := parcels.List(r.Context())
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetParcelHandler(parcels ParcelReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, found, err := parcels.FindByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, "parcel not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func StatsHandler(parcels ParcelReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := parcels.Stats(r.Context())
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
