package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/promojour/promojour/internal/distribution"
)

// DistributeHandler exposes the distribution pipeline to the external
// scheduler. The route is protected by the service-role token middleware, not
// by user auth.
type DistributeHandler struct {
	distributor *distribution.Distributor
}

func NewDistributeHandler(distributor *distribution.Distributor) *DistributeHandler {
	return &DistributeHandler{distributor: distributor}
}

// HandleDistribute runs one full distribution pass. Per-unit publish failures
// are recorded in publication_history and do not fail the request; only an
// orchestration-level error returns 500.
func (h *DistributeHandler) HandleDistribute(c echo.Context) error {
	ctx := c.Request().Context()

	tally, err := h.distributor.Run(ctx)
	if errors.Is(err, distribution.ErrAlreadyRunning) {
		return c.JSON(http.StatusConflict, map[string]string{
			"error":   "distribution already running",
			"details": err.Error(),
		})
	}
	if err != nil {
		slog.Error("distribution run failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   "distribution failed",
			"details": err.Error(),
		})
	}

	slog.Info("distribution run complete",
		"campaigns", tally.Campaigns,
		"published", tally.Published,
		"failed", tally.Failed,
		"skipped", tally.Skipped)

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("processed %d campaigns: %d published, %d failed, %d skipped",
			tally.Campaigns, tally.Published, tally.Failed, tally.Skipped),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
