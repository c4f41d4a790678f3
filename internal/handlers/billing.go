package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/promojour/promojour/internal/auth"
	"github.com/promojour/promojour/internal/billing"
	"github.com/promojour/promojour/storage/db"
)

// BillingHandler creates Stripe subscription checkout sessions for an
// organization's plan.
type BillingHandler struct {
	queries *db.Queries
	billing *billing.Service
}

func NewBillingHandler(queries *db.Queries, billingService *billing.Service) *BillingHandler {
	return &BillingHandler{queries: queries, billing: billingService}
}

type checkoutRequest struct {
	Plan       string `json:"plan"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

func (h *BillingHandler) HandleCreateCheckoutSession(c echo.Context) error {
	orgID, ok := auth.OrganizationID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	user, ok := auth.GetDBUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.SuccessURL == "" || req.CancelURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "success_url and cancel_url are required")
	}

	priceID, err := billing.PlanPriceID(req.Plan)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	org, err := h.queries.GetOrganization(ctx, orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "Organization not found")
	}
	if err != nil {
		slog.Error("failed to fetch organization", "organization_id", orgID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load organization")
	}

	customerID := org.StripeCustomerID.String
	if customerID == "" {
		customer, err := h.billing.CreateCustomer(user.Email, org.Name)
		if err != nil {
			slog.Error("failed to create stripe customer", "organization_id", orgID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create customer")
		}
		customerID = customer.ID

		err = h.queries.UpdateOrganizationBilling(ctx, db.UpdateOrganizationBillingParams{
			StripeCustomerID:     sql.NullString{String: customerID, Valid: true},
			StripeSubscriptionID: org.StripeSubscriptionID,
			Plan:                 org.Plan,
			ID:                   org.ID,
		})
		if err != nil {
			slog.Error("failed to persist stripe customer", "organization_id", orgID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save customer")
		}
	}

	session, err := h.billing.CreateCheckoutSession(customerID, priceID, req.SuccessURL, req.CancelURL)
	if err != nil {
		slog.Error("failed to create checkout session", "organization_id", orgID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create checkout session")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"session_id":   session.ID,
		"checkout_url": session.URL,
	})
}
