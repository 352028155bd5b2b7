package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// bodyTooLarge mirrors the handler package's error envelope:
// {"error":{"code":"body_too_large","message":"..."}}.
type bodyTooLarge struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewMaxBodySizeHandler caps request bodies at limit bytes.
// A declared Content-Length over the limit is refused up front with a JSON
// 413; bodies of unknown length are wrapped in http.MaxBytesReader, and the
// JSON decoder reports the overflow when it reads past the limit.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeBodyTooLarge(w, limit)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeBodyTooLarge(w http.ResponseWriter, limit int64) {
	var body bodyTooLarge
	body.Error.Code = "body_too_large"
	body.Error.Message = fmt.Sprintf("request body exceeds %d bytes", limit)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusRequestEntityTooLarge)
	_ = json.NewEncoder(w).Encode(body)
}
