package checkoutControllers

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// IntentCreator obtains a transaction handle from the payment provider. The
// provider owns the authoritative payment state; we keep only the transient
// client secret it returns.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, description string, metadata map[string]string) (clientSecret string, err error)
}

type stripeIntents struct {
	api *client.API
}

// NewStripeIntents builds an IntentCreator backed by the Stripe PaymentIntents
// API, authenticated with the server-held secret key.
func NewStripeIntents(secretKey string) IntentCreator {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &stripeIntents{api: sc}
}

func (s *stripeIntents) CreateIntent(ctx context.Context, amountMinor int64, currency, description string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(amountMinor),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent: %w", err)
	}
	if pi.ClientSecret == "" {
		return "", fmt.Errorf("stripe returned empty client secret")
	}
	return pi.ClientSecret, nil
}
