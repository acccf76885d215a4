package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderlust/internal/handler"
)

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	httpHandler := handler.NewHealthHandler().Routes()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	httpHandler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body handler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
}

func TestGetOpenAPI(t *testing.T) {
	rec := serve(t, handler.Services{OpenAPI: []byte("openapi: 3.0.3\n")}, http.MethodGet, "/openapi.yaml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "openapi: 3.0.3\n", rec.Body.String())
}

func TestGetOpenAPI_NotConfigured(t *testing.T) {
	rec := serve(t, handler.Services{}, http.MethodGet, "/openapi.yaml", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
