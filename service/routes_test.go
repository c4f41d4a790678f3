package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/promojour/promojour/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *echo.Echo) {
	t.Helper()

	st, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	config := &Config{
		Environment:    "test",
		Port:           "0",
		BaseURL:        "http://localhost",
		ServiceRoleKey: "test-service-role-key",
	}

	svc := New(st, config)
	e := echo.New()
	svc.RegisterRoutes(e)
	return svc, e
}

func TestRouteSmoke(t *testing.T) {
	_, e := newTestService(t)

	tests := []struct {
		name       string
		method     string
		path       string
		authHeader string
		wantStatus int
	}{
		{"health is public", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics is public", http.MethodGet, "/metrics", "", http.StatusOK},
		{"distribute without token", http.MethodPost, "/api/distribute", "", http.StatusUnauthorized},
		{"distribute with wrong token", http.MethodPost, "/api/distribute", "Bearer wrong", http.StatusUnauthorized},
		{"distribute with service token", http.MethodPost, "/api/distribute", "Bearer test-service-role-key", http.StatusOK},
		{"campaigns require auth", http.MethodGet, "/api/campaigns", "", http.StatusUnauthorized},
		{"promotions require auth", http.MethodGet, "/api/promotions", "", http.StatusUnauthorized},
		{"stores require auth", http.MethodGet, "/api/stores", "", http.StatusUnauthorized},
		{"history requires auth", http.MethodGet, "/api/history", "", http.StatusUnauthorized},
		{"publish requires auth", http.MethodPost, "/api/publish", "", http.StatusUnauthorized},
		{"billing requires auth", http.MethodPost, "/api/billing/checkout", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHealthReportsDatabaseState(t *testing.T) {
	_, e := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
