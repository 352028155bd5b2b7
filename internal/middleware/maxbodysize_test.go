package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/middleware"
)

// diaryBody builds a diary create payload whose content is n bytes long.
func diaryBody(n int) string {
	return `{"title":"Salar de Uyuni","content":"` + strings.Repeat("s", n) + `"}`
}

// readingHandler stands in for a JSON handler: it drains the body and records
// how much it saw, failing with 413 when the reader gives up.
func readingHandler(seen *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		*seen = len(b)
		w.WriteHeader(http.StatusCreated)
	})
}

func TestMaxBodySizeHandler_diaryWithinLimit(t *testing.T) {
	var seen int
	h := middleware.NewMaxBodySizeHandler(256)(readingHandler(&seen))

	body := diaryBody(100)
	req := httptest.NewRequest(http.MethodPost, "/trips/1/diaries", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, len(body), seen, "the handler sees the whole body")
}

func TestMaxBodySizeHandler_declaredLengthOverLimit(t *testing.T) {
	called := false
	h := middleware.NewMaxBodySizeHandler(256)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	body := diaryBody(1000)
	req := httptest.NewRequest(http.MethodPost, "/trips/1/diaries", strings.NewReader(body))
	req.ContentLength = int64(len(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, called, "the handler must not run")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "body_too_large", got.Error.Code)
	assert.Equal(t, "request body exceeds 256 bytes", got.Error.Message)
}

func TestMaxBodySizeHandler_streamedBodyOverLimit(t *testing.T) {
	var seen int
	h := middleware.NewMaxBodySizeHandler(256)(readingHandler(&seen))

	req := httptest.NewRequest(http.MethodPut, "/diaries/1", strings.NewReader(diaryBody(1000)))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, seen)
}

func TestMaxBodySizeHandler_bodilessGet(t *testing.T) {
	var seen int
	h := middleware.NewMaxBodySizeHandler(1)(readingHandler(&seen))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/views/expenses", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}
