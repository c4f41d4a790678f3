package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"github.com/promojour/promojour/internal/auth"
	"github.com/promojour/promojour/storage/db"
)

// StoresHandler serves store CRUD plus per-store auto-publish settings and
// publication history.
type StoresHandler struct {
	queries *db.Queries
}

func NewStoresHandler(queries *db.Queries) *StoresHandler {
	return &StoresHandler{queries: queries}
}

type storeRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"is_active"`
}

type storeSettingsRequest struct {
	AutoPublishFacebook  bool `json:"auto_publish_facebook"`
	AutoPublishInstagram bool `json:"auto_publish_instagram"`
}

func (h *StoresHandler) HandleList(c echo.Context) error {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	stores, err := h.queries.ListStoresByOrganization(c.Request().Context(), orgID)
	if err != nil {
		slog.Error("failed to list stores", "organization_id", orgID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load stores")
	}
	if stores == nil {
		stores = []db.Store{}
	}
	return c.JSON(http.StatusOK, stores)
}

func (h *StoresHandler) HandleGet(c echo.Context) error {
	store, err := h.ownedStore(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, store)
}

func (h *StoresHandler) HandleCreate(c echo.Context) error {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	store, err := h.queries.CreateStore(c.Request().Context(), db.CreateStoreParams{
		ID:             ulid.Make().String(),
		OrganizationID: orgID,
		Name:           req.Name,
		Address:        nullString(req.Address),
		IsActive:       req.IsActive,
	})
	if err != nil {
		slog.Error("failed to create store", "organization_id", orgID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create store")
	}
	return c.JSON(http.StatusCreated, store)
}

func (h *StoresHandler) HandleUpdate(c echo.Context) error {
	existing, err := h.ownedStore(c)
	if err != nil {
		return err
	}

	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	store, err := h.queries.UpdateStore(c.Request().Context(), db.UpdateStoreParams{
		Name:     req.Name,
		Address:  nullString(req.Address),
		IsActive: req.IsActive,
		ID:       existing.ID,
	})
	if err != nil {
		slog.Error("failed to update store", "store_id", existing.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update store")
	}
	return c.JSON(http.StatusOK, store)
}

func (h *StoresHandler) HandleDelete(c echo.Context) error {
	store, err := h.ownedStore(c)
	if err != nil {
		return err
	}
	if err := h.queries.DeleteStore(c.Request().Context(), store.ID); err != nil {
		slog.Error("failed to delete store", "store_id", store.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete store")
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleGetSettings returns the store's auto-publish settings. A store with
// no settings row behaves as all-platforms-off, and that default is what gets
// returned.
func (h *StoresHandler) HandleGetSettings(c echo.Context) error {
	store, err := h.ownedStore(c)
	if err != nil {
		return err
	}

	settings, err := h.queries.GetStoreSettings(c.Request().Context(), store.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusOK, db.StoreSetting{StoreID: store.ID})
	}
	if err != nil {
		slog.Error("failed to fetch store settings", "store_id", store.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load settings")
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *StoresHandler) HandleUpdateSettings(c echo.Context) error {
	store, err := h.ownedStore(c)
	if err != nil {
		return err
	}

	var req storeSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	settings, err := h.queries.UpsertStoreSettings(c.Request().Context(), db.UpsertStoreSettingsParams{
		StoreID:              store.ID,
		AutoPublishFacebook:  req.AutoPublishFacebook,
		AutoPublishInstagram: req.AutoPublishInstagram,
	})
	if err != nil {
		slog.Error("failed to update store settings", "store_id", store.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update settings")
	}
	return c.JSON(http.StatusOK, settings)
}

// HandleHistory lists recent publication attempts for one store.
func (h *StoresHandler) HandleHistory(c echo.Context) error {
	store, err := h.ownedStore(c)
	if err != nil {
		return err
	}

	limit := int64(50)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > 500 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 500")
		}
		limit = parsed
	}

	rows, err := h.queries.ListHistoryByStore(c.Request().Context(), db.ListHistoryByStoreParams{
		StoreID: store.ID,
		Limit:   limit,
	})
	if err != nil {
		slog.Error("failed to list store history", "store_id", store.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load history")
	}
	if rows == nil {
		rows = []db.PublicationHistory{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *StoresHandler) ownedStore(c echo.Context) (db.Store, error) {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return db.Store{}, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	store, err := h.queries.GetStore(c.Request().Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return db.Store{}, echo.NewHTTPError(http.StatusNotFound, "Store not found")
	}
	if err != nil {
		slog.Error("failed to fetch store", "store_id", c.Param("id"), "error", err)
		return db.Store{}, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load store")
	}
	if store.OrganizationID != orgID {
		return db.Store{}, echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}
	return store, nil
}
