package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/core/internal/adapters/repository"
	"github.com/stockroom/core/internal/application/services"
	"github.com/stockroom/core/internal/infrastructure/config"
	"github.com/stockroom/core/internal/infrastructure/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		App:       config.AppConfig{Name: "Stockroom", Version: "test", Environment: "test"},
		Server:    config.ServerConfig{Port: 8080, Host: "127.0.0.1"},
		Inventory: config.InventoryConfig{File: filepath.Join(t.TempDir(), "inventory.json"), LowStockThreshold: 5},
		Logger:    config.LoggerConfig{Level: "info", Format: "json", Output: "stdout"},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: "*",
			RateLimitRequests:  1000,
			RateLimitWindow:    time.Minute,
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}

	svc := services.NewInventoryService(repository.NewFileStore(cfg.Inventory.File), nil, logger.NewNop())

	srv, err := New(cfg, svc, logger.NewNop())
	require.NoError(t, err)
	return srv
}

func (s *Server) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestServerHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/ready", "").Code)
}

func TestServerStockLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/v1/items/apple/add", `{"quantity": 10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name": "apple", "quantity": 10}`, rec.Body.String())

	rec = srv.do(http.MethodPost, "/api/v1/items/apple/remove", `{"quantity": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name": "apple", "quantity": 7}`, rec.Body.String())

	rec = srv.do(http.MethodPost, "/api/v1/inventory/save", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodPost, "/api/v1/inventory/load", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodGet, "/api/v1/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"apple": 7}`, rec.Body.String())
}

func TestServerErrorStatuses(t *testing.T) {
	srv := newTestServer(t)

	// Absent item
	rec := srv.do(http.MethodPost, "/api/v1/items/ghost/remove", `{"quantity": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Insufficient quantity
	require.Equal(t, http.StatusOK, srv.do(http.MethodPost, "/api/v1/items/apple/add", `{"quantity": 2}`).Code)
	rec = srv.do(http.MethodPost, "/api/v1/items/apple/remove", `{"quantity": 5}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Validation failure
	rec = srv.do(http.MethodPost, "/api/v1/items/apple/add", `{"quantity": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServerMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inventory_items_tracked")
}
