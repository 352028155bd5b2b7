package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/handler"
)

func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	h := handler.NewHealthHandler().Routes()

	rec := serve(h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[handler.Health](t, rec).Status)
}

func TestRoutes_unregisteredServiceIs404(t *testing.T) {
	h := handler.NewHealthHandler().Routes()

	rec := serve(h, http.MethodGet, "/trips", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
