package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"github.com/promojour/promojour/internal/auth"
	"github.com/promojour/promojour/storage/db"
)

// PromotionsHandler serves the org-scoped promotion CRUD API.
type PromotionsHandler struct {
	queries *db.Queries
}

func NewPromotionsHandler(queries *db.Queries) *PromotionsHandler {
	return &PromotionsHandler{queries: queries}
}

type promotionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	VideoURL    string `json:"video_url"`
	PriceCents  *int64 `json:"price_cents"`
	StoreID     string `json:"store_id"`
	CampaignID  string `json:"campaign_id"`
	Status      string `json:"status"`
}

var promotionStatuses = map[string]bool{
	"draft":     true,
	"scheduled": true,
	"active":    true,
	"expired":   true,
	"archived":  true,
}

func (r *promotionRequest) validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if !promotionStatuses[r.Status] {
		return errors.New("invalid status")
	}
	if r.PriceCents != nil && *r.PriceCents < 0 {
		return errors.New("price_cents must not be negative")
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func (h *PromotionsHandler) HandleList(c echo.Context) error {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	promotions, err := h.queries.ListPromotionsByOrganization(c.Request().Context(), orgID)
	if err != nil {
		slog.Error("failed to list promotions", "organization_id", orgID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load promotions")
	}
	if promotions == nil {
		promotions = []db.Promotion{}
	}
	return c.JSON(http.StatusOK, promotions)
}

func (h *PromotionsHandler) HandleGet(c echo.Context) error {
	promo, err := h.ownedPromotion(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, promo)
}

func (h *PromotionsHandler) HandleCreate(c echo.Context) error {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req promotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.checkReferences(c, orgID, req.StoreID, req.CampaignID); err != nil {
		return err
	}

	promo, err := h.queries.CreatePromotion(c.Request().Context(), db.CreatePromotionParams{
		ID:             ulid.Make().String(),
		OrganizationID: orgID,
		StoreID:        nullString(req.StoreID),
		CampaignID:     nullString(req.CampaignID),
		Title:          req.Title,
		Description:    nullString(req.Description),
		ImageUrl:       nullString(req.ImageURL),
		VideoUrl:       nullString(req.VideoURL),
		PriceCents:     nullInt64(req.PriceCents),
		Status:         req.Status,
	})
	if err != nil {
		slog.Error("failed to create promotion", "organization_id", orgID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create promotion")
	}
	return c.JSON(http.StatusCreated, promo)
}

func (h *PromotionsHandler) HandleUpdate(c echo.Context) error {
	existing, err := h.ownedPromotion(c)
	if err != nil {
		return err
	}

	var req promotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.checkReferences(c, existing.OrganizationID, req.StoreID, req.CampaignID); err != nil {
		return err
	}

	promo, err := h.queries.UpdatePromotion(c.Request().Context(), db.UpdatePromotionParams{
		Title:       req.Title,
		Description: nullString(req.Description),
		ImageUrl:    nullString(req.ImageURL),
		VideoUrl:    nullString(req.VideoURL),
		PriceCents:  nullInt64(req.PriceCents),
		CampaignID:  nullString(req.CampaignID),
		StoreID:     nullString(req.StoreID),
		Status:      req.Status,
		ID:          existing.ID,
	})
	if err != nil {
		slog.Error("failed to update promotion", "promotion_id", existing.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update promotion")
	}
	return c.JSON(http.StatusOK, promo)
}

func (h *PromotionsHandler) HandleDelete(c echo.Context) error {
	promo, err := h.ownedPromotion(c)
	if err != nil {
		return err
	}
	if err := h.queries.DeletePromotion(c.Request().Context(), promo.ID); err != nil {
		slog.Error("failed to delete promotion", "promotion_id", promo.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete promotion")
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleHistory lists all publication attempts for one promotion.
func (h *PromotionsHandler) HandleHistory(c echo.Context) error {
	promo, err := h.ownedPromotion(c)
	if err != nil {
		return err
	}
	rows, err := h.queries.ListHistoryByPromotion(c.Request().Context(), promo.ID)
	if err != nil {
		slog.Error("failed to list promotion history", "promotion_id", promo.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load history")
	}
	if rows == nil {
		rows = []db.PublicationHistory{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PromotionsHandler) ownedPromotion(c echo.Context) (db.Promotion, error) {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return db.Promotion{}, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	promo, err := h.queries.GetPromotion(c.Request().Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return db.Promotion{}, echo.NewHTTPError(http.StatusNotFound, "Promotion not found")
	}
	if err != nil {
		slog.Error("failed to fetch promotion", "promotion_id", c.Param("id"), "error", err)
		return db.Promotion{}, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load promotion")
	}
	if promo.OrganizationID != orgID {
		return db.Promotion{}, echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}
	return promo, nil
}

// checkReferences verifies optional store/campaign links stay inside the
// caller's organization.
func (h *PromotionsHandler) checkReferences(c echo.Context, orgID, storeID, campaignID string) error {
	ctx := c.Request().Context()
	if storeID != "" {
		store, err := h.queries.GetStore(ctx, storeID)
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusBadRequest, "Store not found")
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load store")
		}
		if store.OrganizationID != orgID {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied")
		}
	}
	if campaignID != "" {
		campaign, err := h.queries.GetCampaign(ctx, campaignID)
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusBadRequest, "Campaign not found")
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load campaign")
		}
		if campaign.OrganizationID != orgID {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied")
		}
	}
	return nil
}
