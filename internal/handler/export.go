package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/tripjournal/internal/export"
)

// GetExport handles GET /export.
// It returns one flat row per expense, with trip and diary fields repeated.
// Use ?format=csv or ?format=xlsx for a download; the default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, "format", err)
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.writeError(w, r, "export", err)
		return
	}

	// Encode into a buffer so an encoder failure can still become a 500.
	var buf bytes.Buffer
	if err := export.Encode(&buf, format, rows); err != nil {
		s.writeError(w, r, "export", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if format != export.JSON {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="tripjournal.%s"`, format))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
