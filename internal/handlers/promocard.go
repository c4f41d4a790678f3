package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/promojour/promojour/internal/promocard"
	"github.com/promojour/promojour/storage/db"
)

// PromoCardHandler renders shareable creative for a promotion: a square
// social card PNG and a printable in-store flyer PDF.
type PromoCardHandler struct {
	queries    *db.Queries
	generator  *promocard.Generator
	promotions *PromotionsHandler
	stores     *StoresHandler
	baseURL    string
}

func NewPromoCardHandler(queries *db.Queries, generator *promocard.Generator, baseURL string) *PromoCardHandler {
	return &PromoCardHandler{
		queries:    queries,
		generator:  generator,
		promotions: NewPromotionsHandler(queries),
		stores:     NewStoresHandler(queries),
		baseURL:    baseURL,
	}
}

func (h *PromoCardHandler) landingURL(promoID string) string {
	return fmt.Sprintf("%s/p/%s", h.baseURL, promoID)
}

func (h *PromoCardHandler) HandleCard(c echo.Context) error {
	promo, err := h.promotions.ownedPromotion(c)
	if err != nil {
		return err
	}

	data, err := h.generator.RenderPNG(c.Request().Context(), promo, h.landingURL(promo.ID))
	if err != nil {
		slog.Error("failed to render promo card", "promotion_id", promo.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render card")
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

func (h *PromoCardHandler) HandleFlyer(c echo.Context) error {
	promo, err := h.promotions.ownedPromotion(c)
	if err != nil {
		return err
	}

	var store db.Store
	if storeID := c.QueryParam("store_id"); storeID != "" {
		c.SetParamNames("id")
		c.SetParamValues(storeID)
		store, err = h.stores.ownedStore(c)
		if err != nil {
			return err
		}
	}

	data, err := h.generator.RenderFlyerPDF(promo, store, h.landingURL(promo.ID))
	if err != nil {
		slog.Error("failed to render flyer", "promotion_id", promo.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render flyer")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "flyer-"+promo.ID+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
