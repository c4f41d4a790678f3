package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/promojour/promojour/internal/distribution"
	"github.com/promojour/promojour/internal/graph"
	"github.com/promojour/promojour/internal/merchant"
	"github.com/promojour/promojour/internal/metrics"
	"github.com/promojour/promojour/internal/publisher"
	"github.com/promojour/promojour/storage/db"
)

// PublishHandler is the manual publish path: one promotion to one store on
// explicitly chosen platforms, outside any campaign. Every terminal attempt
// gets a publication_history row, same as the automated pipeline.
type PublishHandler struct {
	queries    *db.Queries
	graph      *graph.Client
	merchant   *merchant.Client
	promotions *PromotionsHandler
	stores     *StoresHandler

	now func() time.Time
}

func NewPublishHandler(queries *db.Queries, graphClient *graph.Client, merchantClient *merchant.Client) *PublishHandler {
	return &PublishHandler{
		queries:    queries,
		graph:      graphClient,
		merchant:   merchantClient,
		promotions: NewPromotionsHandler(queries),
		stores:     NewStoresHandler(queries),
		now:        time.Now,
	}
}

type publishRequest struct {
	PromotionID string   `json:"promotion_id"`
	StoreID     string   `json:"store_id"`
	Platforms   []string `json:"platforms"`
	LandingURL  string   `json:"landing_url"`
}

type publishResult struct {
	Platform string `json:"platform"`
	Status   string `json:"status"`
	PostID   string `json:"post_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (h *PublishHandler) HandlePublish(c echo.Context) error {
	var req publishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.PromotionID == "" || req.StoreID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "promotion_id and store_id are required")
	}
	if len(req.Platforms) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one platform is required")
	}
	for _, platform := range req.Platforms {
		if !connectionPlatforms[platform] {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid platform: "+platform)
		}
	}

	c.SetParamNames("id")
	c.SetParamValues(req.PromotionID)
	promo, err := h.promotions.ownedPromotion(c)
	if err != nil {
		return err
	}
	c.SetParamValues(req.StoreID)
	store, err := h.stores.ownedStore(c)
	if err != nil {
		return err
	}

	if !promo.ImageUrl.Valid && !promo.VideoUrl.Valid {
		return echo.NewHTTPError(http.StatusBadRequest, "promotion has no image or video")
	}

	ctx := c.Request().Context()
	results := make([]publishResult, 0, len(req.Platforms))
	for _, platform := range req.Platforms {
		results = append(results, h.publishTo(ctx, promo, store, platform, req.LandingURL))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"promotion_id": promo.ID,
		"store_id":     store.ID,
		"results":      results,
	})
}

func (h *PublishHandler) publishTo(ctx context.Context, promo db.Promotion, store db.Store, platform, landingURL string) publishResult {
	conn, err := h.queries.GetSocialConnection(ctx, db.GetSocialConnectionParams{
		StoreID:  store.ID,
		Platform: platform,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return h.record(ctx, promo, store, platform, "", errors.New("store has no "+platform+" connection"))
	}
	if err != nil {
		return h.record(ctx, promo, store, platform, "", err)
	}

	var postID string
	if platform == "google_business" {
		postID, err = h.merchant.InsertProduct(ctx, conn, merchant.ProductFromPromotion(promo, landingURL))
	} else {
		var pub publisher.Publisher
		pub, err = publisher.ForPlatform(platform, h.graph)
		if err == nil {
			postID, err = pub.Publish(ctx, conn, publisher.Media{
				Caption:  distribution.Caption(promo),
				ImageURL: promo.ImageUrl.String,
				VideoURL: promo.VideoUrl.String,
			})
		}
	}
	return h.record(ctx, promo, store, platform, postID, err)
}

// record writes exactly one history row for the attempt and returns the API
// view of the outcome.
func (h *PublishHandler) record(ctx context.Context, promo db.Promotion, store db.Store, platform, postID string, publishErr error) publishResult {
	status := "success"
	result := publishResult{Platform: platform, Status: status, PostID: postID}

	var errMsg sql.NullString
	if publishErr != nil {
		status = "error"
		result.Status = status
		result.PostID = ""
		result.Error = publishErr.Error()
		errMsg = sql.NullString{String: publishErr.Error(), Valid: true}
		slog.Warn("manual publish failed",
			"promotion_id", promo.ID, "store_id", store.ID, "platform", platform, "error", publishErr)
	} else {
		slog.Info("manual publish succeeded",
			"promotion_id", promo.ID, "store_id", store.ID, "platform", platform, "post_id", postID)
	}

	metrics.PublishAttempts.WithLabelValues(platform, status).Inc()

	_, err := h.queries.CreatePublicationHistory(ctx, db.CreatePublicationHistoryParams{
		ID:           uuid.New().String(),
		PromotionID:  promo.ID,
		StoreID:      store.ID,
		Platform:     platform,
		Status:       status,
		PostID:       nullString(result.PostID),
		ErrorMessage: errMsg,
		PublishedAt:  h.now().UTC(),
	})
	if err != nil {
		slog.Error("failed to record publication history",
			"promotion_id", promo.ID, "store_id", store.ID, "platform", platform, "error", err)
	}
	return result
}
