package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/middleware"
)

const appOrigin = "http://localhost:8081"

// exportStub answers like GET /export?format=csv.
var exportStub = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="tripjournal.csv"`)
	w.WriteHeader(http.StatusOK)
})

func preflight(h http.Handler, origin, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, target, nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", method)
	// rs/cors compares requested headers in lowercase.
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORSHandler_exportExposesContentDisposition(t *testing.T) {
	h := middleware.NewCORSHandler([]string{appOrigin})(exportStub)

	req := httptest.NewRequest(http.MethodGet, "/export?format=csv", nil)
	req.Header.Set("Origin", appOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, appOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Disposition", rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORSHandler_preflightAllowsWriteMethods(t *testing.T) {
	h := middleware.NewCORSHandler([]string{appOrigin})(exportStub)

	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/trips/1/expenses"},
		{http.MethodPut, "/diaries/1"},
		{http.MethodPatch, "/budgets/1"},
		{http.MethodDelete, "/notes/1"},
	} {
		t.Run(tc.method, func(t *testing.T) {
			rec := preflight(h, appOrigin, tc.method, tc.target)

			assert.Less(t, rec.Code, 300, "preflight must succeed")
			assert.Equal(t, appOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.method, rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestCORSHandler_preflightRejectsUnlistedMethod(t *testing.T) {
	h := middleware.NewCORSHandler([]string{appOrigin})(exportStub)

	rec := preflight(h, appOrigin, "TRACE", "/trips")

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSHandler_unknownOriginGetsNoHeaders(t *testing.T) {
	h := middleware.NewCORSHandler([]string{appOrigin})(exportStub)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORSHandler_wildcardOrigin(t *testing.T) {
	h := middleware.NewCORSHandler([]string{"*"})(exportStub)

	req := httptest.NewRequest(http.MethodGet, "/lookups", nil)
	req.Header.Set("Origin", "http://phone.local:19006")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
