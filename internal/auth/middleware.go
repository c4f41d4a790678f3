package auth

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/labstack/echo/v4"
	"github.com/promojour/promojour/storage"
	"github.com/promojour/promojour/storage/db"
)

// Context keys for storing auth data
const (
	DBUserKey          = "db_user"
	IsAuthenticatedKey = "is_authenticated"
)

// ClerkAuthMiddleware verifies Clerk session tokens and loads the matching
// user from the database. It is optional: unauthenticated requests pass
// through with IsAuthenticatedKey set to false, and RequireAuth enforces
// access where needed.
func ClerkAuthMiddleware(st *storage.Storage) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				c.Set(IsAuthenticatedKey, false)
				return next(c)
			}

			claims, err := jwt.Verify(c.Request().Context(), &jwt.VerifyParams{
				Token: token,
			})
			if err != nil {
				slog.Debug("clerk jwt verification failed", "error", err)
				c.Set(IsAuthenticatedKey, false)
				return next(c)
			}

			dbUser, err := st.Queries.GetUserByClerkID(c.Request().Context(), sql.NullString{
				String: claims.Subject,
				Valid:  true,
			})
			if err != nil {
				slog.Warn("no local user for clerk subject", "clerk_user_id", claims.Subject, "error", err)
				c.Set(IsAuthenticatedKey, false)
				return next(c)
			}

			c.Set(DBUserKey, &dbUser)
			c.Set(IsAuthenticatedKey, true)
			return next(c)
		}
	}
}

func bearerToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// RequireAuth rejects unauthenticated requests.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsAuthenticated(c) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects requests from non-admin users.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := GetDBUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if !user.IsAdmin {
				return echo.NewHTTPError(http.StatusUnauthorized, "Admin access required")
			}
			return next(c)
		}
	}
}

// GetDBUser retrieves the database user from context.
func GetDBUser(c echo.Context) (*db.User, bool) {
	user, ok := c.Get(DBUserKey).(*db.User)
	return user, ok && user != nil
}

// IsAuthenticated checks if the current request is authenticated.
func IsAuthenticated(c echo.Context) bool {
	isAuth, _ := c.Get(IsAuthenticatedKey).(bool)
	return isAuth
}

// OrganizationID returns the authenticated user's organization scope.
func OrganizationID(c echo.Context) (string, bool) {
	if user, ok := GetDBUser(c); ok {
		return user.OrganizationID, true
	}
	return "", false
}
