package services

import "context"

// IntentStatus is the gateway's view of a payment intent.
type IntentStatus string

const (
	IntentStatusSucceeded IntentStatus = "succeeded"
	IntentStatusPending   IntentStatus = "pending"
	IntentStatusFailed    IntentStatus = "failed"
)

// PaymentGateway abstracts the external payment provider. CreateIntent is
// called at order creation, VerifyIntent before approval. Amounts are in the
// smallest currency unit.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (string, error)
	VerifyIntent(ctx context.Context, intentID string) (IntentStatus, error)
}
