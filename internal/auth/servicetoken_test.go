package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callWithAuthHeader(t *testing.T, serviceToken, header string) (int, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/distribute", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := ServiceTokenAuth(serviceToken)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec.Code, err
}

func TestServiceTokenAuth(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		header     string
		authorized bool
	}{
		{"exact match", "service-key", "Bearer service-key", true},
		{"wrong token", "service-key", "Bearer other-key", false},
		{"missing header", "service-key", "", false},
		{"no bearer prefix", "service-key", "service-key", false},
		{"token not configured", "", "Bearer service-key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := callWithAuthHeader(t, tt.token, tt.header)
			if tt.authorized {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, code)
				return
			}
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/campaigns", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RequireAuth()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

	c.Set(IsAuthenticatedKey, true)
	require.NoError(t, handler(c))
}
