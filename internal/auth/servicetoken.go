package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
)

// ServiceTokenAuth authorizes machine callers such as the external cron
// trigger. The Authorization header must carry the exact service-role bearer
// token; any other caller gets a 401.
func ServiceTokenAuth(serviceToken string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if serviceToken == "" {
				return echo.NewHTTPError(401, "Service token not configured")
			}

			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(401, "Missing bearer token")
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if subtle.ConstantTimeCompare([]byte(token), []byte(serviceToken)) != 1 {
				return echo.NewHTTPError(401, "Invalid service token")
			}

			return next(c)
		}
	}
}
