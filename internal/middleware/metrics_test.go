package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/middleware"
)

func TestMetrics_countsByRoutePattern(t *testing.T) {
	m := middleware.NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/trips/{tripID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	n, err := testutil.GatherAndCount(m.Registry(), "tripjournal_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "all three requests share one series")
}

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m := middleware.NewMetrics()
	h := m.Middleware(exportStub)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tripjournal_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
