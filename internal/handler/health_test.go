package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/backend/internal/handler"
	"github.com/wayfarer-travel/backend/spec"
)

// rejectAuth stands in for the JWT middleware and fails every request it
// guards, so anything that comes back 200 must be on a public route.
func rejectAuth(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func TestGetHome_IsPublic(t *testing.T) {
	h := handler.Routes(handler.NewServer(nil, nil, nil, nil, nil), rejectAuth)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"service":"wayfarer-api","status":"ok"}`, rec.Body.String())
}

func TestGetHealth_IsPublic(t *testing.T) {
	h := handler.Routes(handler.NewServer(nil, nil, nil, nil, nil), rejectAuth)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetOpenAPI_IsPublic(t *testing.T) {
	h := handler.Routes(handler.NewServer(nil, nil, nil, nil, nil), rejectAuth)

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, spec.OpenAPI, rec.Body.Bytes())
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	h := handler.Routes(handler.NewServer(nil, nil, nil, nil, nil), rejectAuth)

	for _, path := range []string{"/trips", "/user/profile", "/export"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
