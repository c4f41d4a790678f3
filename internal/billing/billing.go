package billing

import (
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v80"
	checkoutsession "github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/customer"
	"github.com/stripe/stripe-go/v80/subscription"
)

func init() {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
}

// Service wraps the Stripe subscription billing calls for organizations.
type Service struct {
	apiKey string
}

func NewService() *Service {
	return &Service{
		apiKey: os.Getenv("STRIPE_SECRET_KEY"),
	}
}

func (s *Service) IsConfigured() bool {
	return s.apiKey != ""
}

// PlanPriceID maps a plan name to its Stripe price, configured via env.
func PlanPriceID(plan string) (string, error) {
	var priceID string
	switch plan {
	case "starter":
		priceID = os.Getenv("STRIPE_PRICE_STARTER")
	case "pro":
		priceID = os.Getenv("STRIPE_PRICE_PRO")
	default:
		return "", fmt.Errorf("unknown plan: %s", plan)
	}
	if priceID == "" {
		return "", fmt.Errorf("no Stripe price configured for plan %s", plan)
	}
	return priceID, nil
}

// CreateCustomer creates a Stripe customer for an organization.
func (s *Service) CreateCustomer(email, name string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}

	return customer.New(params)
}

// CreateCheckoutSession starts a subscription checkout for an organization's
// plan and returns the hosted checkout URL to redirect the user to.
func (s *Service) CreateCheckoutSession(customerID, priceID, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(customerID),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
	}

	return checkoutsession.New(params)
}

// GetSubscription retrieves a subscription by ID.
func (s *Service) GetSubscription(subscriptionID string) (*stripe.Subscription, error) {
	return subscription.Get(subscriptionID, nil)
}

// CancelSubscription cancels an organization's subscription at period end.
func (s *Service) CancelSubscription(subscriptionID string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	}
	return subscription.Update(subscriptionID, params)
}
