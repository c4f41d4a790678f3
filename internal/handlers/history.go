package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/promojour/promojour/internal/auth"
	"github.com/promojour/promojour/storage/db"
)

// HistoryHandler serves the organization-wide publication ledger.
type HistoryHandler struct {
	queries *db.Queries
}

func NewHistoryHandler(queries *db.Queries) *HistoryHandler {
	return &HistoryHandler{queries: queries}
}

// HandleList returns every publication attempt across the organization's
// stores in a date range. Defaults to the last 7 days.
func (h *HistoryHandler) HandleList(c echo.Context) error {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now

	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		from = parsed
	}
	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		// Inclusive end date.
		to = parsed.AddDate(0, 0, 1)
	}
	if to.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "to must not be before from")
	}

	rows, err := h.queries.ListOrganizationHistoryBetween(c.Request().Context(), db.ListOrganizationHistoryBetweenParams{
		OrganizationID: orgID,
		PublishedAt:    from,
		PublishedAt_2:  to,
	})
	if err != nil {
		slog.Error("failed to list organization history", "organization_id", orgID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load history")
	}
	if rows == nil {
		rows = []db.PublicationHistory{}
	}
	return c.JSON(http.StatusOK, rows)
}
