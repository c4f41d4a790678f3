package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"github.com/promojour/promojour/internal/auth"
	"github.com/promojour/promojour/storage/db"
)

// CampaignsHandler serves the org-scoped campaign CRUD API.
type CampaignsHandler struct {
	queries *db.Queries
}

func NewCampaignsHandler(queries *db.Queries) *CampaignsHandler {
	return &CampaignsHandler{queries: queries}
}

type campaignRequest struct {
	Name                string `json:"name"`
	StoreID             string `json:"store_id"`
	Status              string `json:"status"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	DailyPromotionCount int64  `json:"daily_promotion_count"`
	RandomOrder         bool   `json:"random_order"`
}

var campaignStatuses = map[string]bool{
	"draft":     true,
	"scheduled": true,
	"active":    true,
	"completed": true,
	"archived":  true,
}

func (r *campaignRequest) validate() (time.Time, time.Time, error) {
	if r.Name == "" {
		return time.Time{}, time.Time{}, errors.New("name is required")
	}
	if !campaignStatuses[r.Status] {
		return time.Time{}, time.Time{}, errors.New("invalid status")
	}
	if r.DailyPromotionCount < 1 {
		return time.Time{}, time.Time{}, errors.New("daily_promotion_count must be at least 1")
	}
	start, err := time.ParseInLocation("2006-01-02", r.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("start_date must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation("2006-01-02", r.EndDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end_date must not be before start_date")
	}
	return start, end, nil
}

func (h *CampaignsHandler) HandleList(c echo.Context) error {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	campaigns, err := h.queries.ListCampaignsByOrganization(c.Request().Context(), orgID)
	if err != nil {
		slog.Error("failed to list campaigns", "organization_id", orgID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load campaigns")
	}
	if campaigns == nil {
		campaigns = []db.Campaign{}
	}
	return c.JSON(http.StatusOK, campaigns)
}

func (h *CampaignsHandler) HandleGet(c echo.Context) error {
	campaign, err := h.ownedCampaign(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

func (h *CampaignsHandler) HandleCreate(c echo.Context) error {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req campaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	start, end, err := req.validate()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	storeID, err := h.resolveStore(c, orgID, req.StoreID)
	if err != nil {
		return err
	}

	campaign, err := h.queries.CreateCampaign(ctx, db.CreateCampaignParams{
		ID:                  ulid.Make().String(),
		OrganizationID:      orgID,
		StoreID:             storeID,
		Name:                req.Name,
		Status:              req.Status,
		StartDate:           start,
		EndDate:             end,
		DailyPromotionCount: req.DailyPromotionCount,
		RandomOrder:         req.RandomOrder,
	})
	if err != nil {
		slog.Error("failed to create campaign", "organization_id", orgID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create campaign")
	}
	return c.JSON(http.StatusCreated, campaign)
}

func (h *CampaignsHandler) HandleUpdate(c echo.Context) error {
	existing, err := h.ownedCampaign(c)
	if err != nil {
		return err
	}

	var req campaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	start, end, err := req.validate()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	storeID, err := h.resolveStore(c, existing.OrganizationID, req.StoreID)
	if err != nil {
		return err
	}

	campaign, err := h.queries.UpdateCampaign(c.Request().Context(), db.UpdateCampaignParams{
		Name:                req.Name,
		StoreID:             storeID,
		Status:              req.Status,
		StartDate:           start,
		EndDate:             end,
		DailyPromotionCount: req.DailyPromotionCount,
		RandomOrder:         req.RandomOrder,
		ID:                  existing.ID,
	})
	if err != nil {
		slog.Error("failed to update campaign", "campaign_id", existing.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update campaign")
	}
	return c.JSON(http.StatusOK, campaign)
}

func (h *CampaignsHandler) HandleDelete(c echo.Context) error {
	campaign, err := h.ownedCampaign(c)
	if err != nil {
		return err
	}
	if err := h.queries.DeleteCampaign(c.Request().Context(), campaign.ID); err != nil {
		slog.Error("failed to delete campaign", "campaign_id", campaign.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete campaign")
	}
	return c.NoContent(http.StatusNoContent)
}

// ownedCampaign loads the :id campaign and verifies it belongs to the
// caller's organization.
func (h *CampaignsHandler) ownedCampaign(c echo.Context) (db.Campaign, error) {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return db.Campaign{}, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	campaign, err := h.queries.GetCampaign(c.Request().Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return db.Campaign{}, echo.NewHTTPError(http.StatusNotFound, "Campaign not found")
	}
	if err != nil {
		slog.Error("failed to fetch campaign", "campaign_id", c.Param("id"), "error", err)
		return db.Campaign{}, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load campaign")
	}
	if campaign.OrganizationID != orgID {
		return db.Campaign{}, echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}
	return campaign, nil
}

// resolveStore validates an optional pinned store against the organization.
func (h *CampaignsHandler) resolveStore(c echo.Context, orgID, storeID string) (sql.NullString, error) {
	if storeID == "" {
		return sql.NullString{}, nil
	}
	store, err := h.queries.GetStore(c.Request().Context(), storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.NullString{}, echo.NewHTTPError(http.StatusBadRequest, "Store not found")
	}
	if err != nil {
		return sql.NullString{}, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load store")
	}
	if store.OrganizationID != orgID {
		return sql.NullString{}, echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}
	return sql.NullString{String: store.ID, Valid: true}, nil
}
