package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"github.com/promojour/promojour/internal/merchant"
	"github.com/promojour/promojour/storage/db"
)

// ConnectionsHandler manages per-store social platform connections. Tokens
// arrive from the dashboard after the user completes the platform's OAuth
// flow; this API only stores and revokes them.
type ConnectionsHandler struct {
	queries  *db.Queries
	merchant *merchant.Client
	stores   *StoresHandler
}

func NewConnectionsHandler(queries *db.Queries, merchantClient *merchant.Client) *ConnectionsHandler {
	return &ConnectionsHandler{
		queries:  queries,
		merchant: merchantClient,
		stores:   NewStoresHandler(queries),
	}
}

var connectionPlatforms = map[string]bool{
	"facebook":        true,
	"instagram":       true,
	"google_business": true,
}

type connectionRequest struct {
	Platform       string `json:"platform"`
	AccountID      string `json:"account_id"`
	AccountName    string `json:"account_name"`
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
	TokenExpiresAt string `json:"token_expires_at"`
}

// connectionView hides token material from API responses.
type connectionView struct {
	ID             string     `json:"id"`
	StoreID        string     `json:"store_id"`
	Platform       string     `json:"platform"`
	AccountID      string     `json:"account_id,omitempty"`
	AccountName    string     `json:"account_name,omitempty"`
	IsConnected    bool       `json:"is_connected"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
}

func viewConnection(conn db.SocialConnection) connectionView {
	v := connectionView{
		ID:          conn.ID,
		StoreID:     conn.StoreID,
		Platform:    conn.Platform,
		AccountID:   conn.AccountID.String,
		AccountName: conn.AccountName.String,
		IsConnected: conn.IsConnected,
	}
	if conn.TokenExpiresAt.Valid {
		expires := conn.TokenExpiresAt.Time
		v.TokenExpiresAt = &expires
	}
	return v
}

func (h *ConnectionsHandler) HandleList(c echo.Context) error {
	store, err := h.stores.ownedStore(c)
	if err != nil {
		return err
	}

	conns, err := h.queries.ListSocialConnectionsByStore(c.Request().Context(), store.ID)
	if err != nil {
		slog.Error("failed to list connections", "store_id", store.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load connections")
	}

	views := make([]connectionView, 0, len(conns))
	for _, conn := range conns {
		views = append(views, viewConnection(conn))
	}
	return c.JSON(http.StatusOK, views)
}

func (h *ConnectionsHandler) HandleConnect(c echo.Context) error {
	store, err := h.stores.ownedStore(c)
	if err != nil {
		return err
	}

	var req connectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if !connectionPlatforms[req.Platform] {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid platform")
	}
	if req.AccountID == "" || req.AccessToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "account_id and access_token are required")
	}

	var expiresAt sql.NullTime
	if req.TokenExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.TokenExpiresAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "token_expires_at must be RFC 3339")
		}
		expiresAt = sql.NullTime{Time: parsed, Valid: true}
	}

	conn, err := h.queries.UpsertSocialConnection(c.Request().Context(), db.UpsertSocialConnectionParams{
		ID:             ulid.Make().String(),
		StoreID:        store.ID,
		Platform:       req.Platform,
		AccountID:      nullString(req.AccountID),
		AccountName:    nullString(req.AccountName),
		IsConnected:    true,
		AccessToken:    nullString(req.AccessToken),
		RefreshToken:   nullString(req.RefreshToken),
		TokenExpiresAt: expiresAt,
	})
	if err != nil {
		slog.Error("failed to upsert connection", "store_id", store.ID, "platform", req.Platform, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save connection")
	}

	slog.Info("store connected to platform", "store_id", store.ID, "platform", req.Platform)
	return c.JSON(http.StatusOK, viewConnection(conn))
}

func (h *ConnectionsHandler) HandleDisconnect(c echo.Context) error {
	store, err := h.stores.ownedStore(c)
	if err != nil {
		return err
	}

	platform := c.Param("platform")
	if !connectionPlatforms[platform] {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid platform")
	}

	err = h.queries.DisconnectSocialConnection(c.Request().Context(), db.DisconnectSocialConnectionParams{
		StoreID:  store.ID,
		Platform: platform,
	})
	if err != nil {
		slog.Error("failed to disconnect", "store_id", store.ID, "platform", platform, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to disconnect")
	}

	slog.Info("store disconnected from platform", "store_id", store.ID, "platform", platform)
	return c.NoContent(http.StatusNoContent)
}

// HandleVerifyGoogle checks the stored google_business connection against
// the Content API authinfo endpoint and reports the merchant IDs the token
// can see.
func (h *ConnectionsHandler) HandleVerifyGoogle(c echo.Context) error {
	store, err := h.stores.ownedStore(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	conn, err := h.queries.GetSocialConnection(ctx, db.GetSocialConnectionParams{
		StoreID:  store.ID,
		Platform: "google_business",
	})
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "Store has no Google connection")
	}
	if err != nil {
		slog.Error("failed to fetch google connection", "store_id", store.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load connection")
	}

	merchantIDs, err := h.merchant.AuthInfo(ctx, conn)
	if err != nil {
		slog.Warn("google connection verification failed", "store_id", store.ID, "error", err)
		return c.JSON(http.StatusOK, map[string]any{
			"verified": false,
			"error":    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"verified":     true,
		"merchant_ids": merchantIDs,
	})
}
