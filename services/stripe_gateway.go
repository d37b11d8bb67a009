package services

import (
	"context"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

// StripeGateway implements PaymentGateway against the Stripe API.
type StripeGateway struct {
	secretKey string
}

func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{secretKey: secretKey}
}

func (g *StripeGateway) CreateIntent(_ context.Context, amount int64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ID, nil
}

func (g *StripeGateway) VerifyIntent(_ context.Context, intentID string) (IntentStatus, error) {
	pi, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return "", err
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return IntentStatusSucceeded, nil
	case stripe.PaymentIntentStatusCanceled:
		return IntentStatusFailed, nil
	default:
		return IntentStatusPending, nil
	}
}
