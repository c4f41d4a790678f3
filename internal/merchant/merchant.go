package merchant

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/promojour/promojour/storage/db"
)

const (
	defaultBaseURL = "https://shoppingcontent.googleapis.com/content/v2.1"

	// Refresh the access token when it expires within this window.
	refreshWindow = 5 * time.Minute
)

// Client uploads promotions as products to Google Merchant Center through the
// Content API for Shopping. The connection's account_id is the merchant ID.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	oauthConfig *oauth2.Config
	queries     *db.Queries
}

func NewClient(queries *db.Queries) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		oauthConfig: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			Endpoint:     google.Endpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/content"},
		},
		queries: queries,
	}
}

// NewClientWithEndpoints overrides the Content API host and OAuth token URL,
// used by tests.
func NewClientWithEndpoints(queries *db.Queries, baseURL, tokenURL string) *Client {
	c := NewClient(queries)
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.oauthConfig.Endpoint = oauth2.Endpoint{TokenURL: tokenURL}
	return c
}

// accessToken returns a live access token for the connection, refreshing and
// persisting it when it expires within the refresh window.
func (c *Client) accessToken(ctx context.Context, conn db.SocialConnection) (string, error) {
	if !conn.IsConnected || !conn.AccessToken.Valid || conn.AccessToken.String == "" {
		return "", fmt.Errorf("no active %s connection for store %s", conn.Platform, conn.StoreID)
	}

	needsRefresh := conn.TokenExpiresAt.Valid && time.Until(conn.TokenExpiresAt.Time) < refreshWindow
	if !needsRefresh {
		return conn.AccessToken.String, nil
	}
	if !conn.RefreshToken.Valid || conn.RefreshToken.String == "" {
		return "", fmt.Errorf("google token for store %s expires soon and no refresh token is stored", conn.StoreID)
	}

	// Omitting the access token forces the source to run the refresh grant
	// even though the stored token has not fully expired yet.
	source := c.oauthConfig.TokenSource(ctx, &oauth2.Token{
		RefreshToken: conn.RefreshToken.String,
	})
	fresh, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("refresh google token: %w", err)
	}

	if err := c.queries.UpdateSocialConnectionToken(ctx, db.UpdateSocialConnectionTokenParams{
		AccessToken:    sql.NullString{String: fresh.AccessToken, Valid: true},
		TokenExpiresAt: sql.NullTime{Time: fresh.Expiry, Valid: !fresh.Expiry.IsZero()},
		ID:             conn.ID,
	}); err != nil {
		slog.Error("failed to persist refreshed google token", "connection_id", conn.ID, "error", err)
	}

	slog.Info("refreshed google access token", "connection_id", conn.ID, "expires_at", fresh.Expiry)
	return fresh.AccessToken, nil
}

// Product is the Content API product resource subset this service writes.
type Product struct {
	OfferID         string `json:"offerId"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Link            string `json:"link"`
	ImageLink       string `json:"imageLink,omitempty"`
	ContentLanguage string `json:"contentLanguage"`
	TargetCountry   string `json:"targetCountry"`
	Channel         string `json:"channel"`
	Availability    string `json:"availability"`
	Price           *Price `json:"price,omitempty"`
}

type Price struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// ProductFromPromotion maps a promotion to a Content API product.
func ProductFromPromotion(promo db.Promotion, landingURL string) Product {
	product := Product{
		OfferID:         promo.ID,
		Title:           promo.Title,
		Link:            landingURL,
		ContentLanguage: "en",
		TargetCountry:   "US",
		Channel:         "online",
		Availability:    "in stock",
	}
	if promo.Description.Valid {
		product.Description = promo.Description.String
	}
	if promo.ImageUrl.Valid {
		product.ImageLink = promo.ImageUrl.String
	}
	if promo.PriceCents.Valid {
		product.Price = &Price{
			Value:    fmt.Sprintf("%d.%02d", promo.PriceCents.Int64/100, promo.PriceCents.Int64%100),
			Currency: "USD",
		}
	}
	return product
}

// InsertProduct uploads a product under the connection's merchant account and
// returns the Content API product ID.
func (c *Client) InsertProduct(ctx context.Context, conn db.SocialConnection, product Product) (string, error) {
	if !conn.AccountID.Valid || conn.AccountID.String == "" {
		return "", fmt.Errorf("google connection for store %s has no merchant id", conn.StoreID)
	}

	token, err := c.accessToken(ctx, conn)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(product)
	if err != nil {
		return "", fmt.Errorf("marshal product: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/products", c.baseURL, conn.AccountID.String)
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, endpoint, token, bytes.NewReader(body), &resp); err != nil {
		return "", fmt.Errorf("insert product: %w", err)
	}
	return resp.ID, nil
}

// AuthInfo returns the merchant account IDs the connection's token can
// manage, used to verify a connection after OAuth.
func (c *Client) AuthInfo(ctx context.Context, conn db.SocialConnection) ([]string, error) {
	token, err := c.accessToken(ctx, conn)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/accounts/authinfo"
	var resp struct {
		AccountIdentifiers []struct {
			MerchantID string `json:"merchantId"`
		} `json:"accountIdentifiers"`
	}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, token, nil, &resp); err != nil {
		return nil, fmt.Errorf("authinfo: %w", err)
	}

	ids := make([]string, 0, len(resp.AccountIdentifiers))
	for _, identifier := range resp.AccountIdentifiers {
		ids = append(ids, identifier.MerchantID)
	}
	return ids, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint, token string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("content api error: status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
