package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"parcel-tracker/internal/parcel"
	"parcel-tracker/internal/prediction"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPredictor struct {
	mu    sync.Mutex
	calls []string
	// block, when set, holds the first call until it is closed.
	block   chan struct{}
	started chan struct{}
}

func (s *stubPredictor) PredictDeliveryRisk(_ context.Context, p parcel.Parcel) prediction.Result {
	s.mu.Lock()
	s.calls = append(s.calls, p.ID)
	first := len(s.calls) == 1
	s.mu.Unlock()

	if first && s.block != nil {
		close(s.started)
		<-s.block
	}
	return prediction.Fallback(p)
}

func newTestRouter(t *testing.T, predictor Predictor, opts ...parcel.Option) http.Handler {
	t.Helper()
	store, err := parcel.NewStore(parcel.Seed(), opts...)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	reg.MustRegister(parcel.NewStatusCollector(store))

	return NewRouter(Deps{
		ServiceName: "parcel-tracker",
		Parcels:     store,
		Predictor:   predictor,
		Sequencer:   prediction.NewSequencer(),
		Gatherer:    reg,
	})
}

func do(h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestListParcels(t *testing.T) {
	h := newTestRouter(t, &stubPredictor{})

	w := do(h, http.MethodGet, "/api/parcels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var list []parcel.Parcel
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 4)
	assert.Equal(t, "PKG-1001", list[0].ID)
	assert.Equal(t, "PKG-1004", list[3].ID)
}

func TestGetParcel(t *testing.T) {
	h := newTestRouter(t, &stubPredictor{})

	w := do(h, http.MethodGet, "/api/parcels/pkg-1002", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var p map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	assert.Equal(t, "PKG-1002", p["id"])
	assert.Equal(t, "Delivered", p["status"])
	assert.Len(t, p["history"], 4)
	assert.Contains(t, p, "estimatedDelivery")
}

func TestGetParcelNotFound(t *testing.T) {
	h := newTestRouter(t, &stubPredictor{})

	w := do(h, http.MethodGet, "/api/parcels/PKG-9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"parcel not found"}`, w.Body.String())
}

func TestStats(t *testing.T) {
	h := newTestRouter(t, &stubPredictor{})

	w := do(h, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":4,"delivered":1,"inTransit":2,"delayed":1}`, w.Body.String())
}

func TestPrediction(t *testing.T) {
	predictor := &stubPredictor{}
	h := newTestRouter(t, predictor)

	w := do(h, http.MethodPost, "/api/parcels/pkg-1001/prediction", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got prediction.Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, 15, got.DelayRisk)
	assert.Equal(t, "2024-05-22T18:00:00Z", got.AdjustedDeliveryTime)
	assert.Equal(t, []string{"PKG-1001"}, predictor.calls)
}

func TestPredictionUnknownParcel(t *testing.T) {
	predictor := &stubPredictor{}
	h := newTestRouter(t, predictor)

	w := do(h, http.MethodPost, "/api/parcels/nope/prediction", map[string]string{SessionHeader: "s1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, predictor.calls)
}

func TestPredictionSupersededBySameSession(t *testing.T) {
	predictor := &stubPredictor{block: make(chan struct{}), started: make(chan struct{})}
	h := newTestRouter(t, predictor)
	session := map[string]string{SessionHeader: "browser-tab-1"}

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- do(h, http.MethodPost, "/api/parcels/PKG-1001/prediction", session)
	}()
	<-predictor.started

	second := do(h, http.MethodPost, "/api/parcels/PKG-1003/prediction", session)
	assert.Equal(t, http.StatusOK, second.Code)

	close(predictor.block)
	stale := <-first
	assert.Equal(t, http.StatusConflict, stale.Code)
	assert.JSONEq(t, `{"error":"prediction superseded by a newer request"}`, stale.Body.String())
}

// slowLookup holds the first FindByID until block is closed.
type slowLookup struct {
	*parcel.Store
	once    sync.Once
	started chan struct{}
	block   chan struct{}
}

func (s *slowLookup) FindByID(ctx context.Context, id string) (parcel.Parcel, bool, error) {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.started)
		<-s.block
	}
	return s.Store.FindByID(ctx, id)
}

func TestPredictionSupersededDuringLookupSkipsModel(t *testing.T) {
	store, err := parcel.NewStore(parcel.Seed())
	require.NoError(t, err)
	lookup := &slowLookup{Store: store, started: make(chan struct{}), block: make(chan struct{})}
	predictor := &stubPredictor{}
	h := NewRouter(Deps{
		ServiceName: "parcel-tracker",
		Parcels:     lookup,
		Predictor:   predictor,
		Sequencer:   prediction.NewSequencer(),
		Gatherer:    prometheus.NewRegistry(),
	})
	session := map[string]string{SessionHeader: "browser-tab-1"}

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- do(h, http.MethodPost, "/api/parcels/PKG-1001/prediction", session)
	}()
	<-lookup.started

	second := do(h, http.MethodPost, "/api/parcels/PKG-1003/prediction", session)
	assert.Equal(t, http.StatusOK, second.Code)

	close(lookup.block)
	stale := <-first
	assert.Equal(t, http.StatusConflict, stale.Code)

	predictor.mu.Lock()
	defer predictor.mu.Unlock()
	assert.Equal(t, []string{"PKG-1003"}, predictor.calls, "stale request must not reach the model")
}

func TestPredictionOtherSessionNotSuperseded(t *testing.T) {
	predictor := &stubPredictor{block: make(chan struct{}), started: make(chan struct{})}
	h := newTestRouter(t, predictor)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- do(h, http.MethodPost, "/api/parcels/PKG-1001/prediction", map[string]string{SessionHeader: "a"})
	}()
	<-predictor.started

	other := do(h, http.MethodPost, "/api/parcels/PKG-1003/prediction", map[string]string{SessionHeader: "b"})
	assert.Equal(t, http.StatusOK, other.Code)

	close(predictor.block)
	assert.Equal(t, http.StatusOK, (<-first).Code)
}

func TestCanceledRequestDuringLatency(t *testing.T) {
	h := newTestRouter(t, &stubPredictor{}, parcel.WithLookupLatency(time.Hour), parcel.WithListLatency(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, path := range []string{"/api/parcels", "/api/parcels/PKG-1001", "/api/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, &stubPredictor{})

	w := do(h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// One gauge per status; Out for Delivery is not folded into In Transit.
	assert.True(t, strings.Contains(body, `parcel_store_parcels{status="In Transit"} 1`), body)
	assert.Contains(t, body, `parcel_store_parcels{status="Out for Delivery"} 1`)
	assert.Contains(t, body, `parcel_store_parcels{status="Delivered"} 1`)
	assert.Contains(t, body, `parcel_store_parcels{status="Delayed"} 1`)
	assert.Contains(t, body, `parcel_store_parcels{status="Ordered"} 0`)
}
