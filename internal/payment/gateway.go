// Package payment wraps the external payment provider. It owns the
// checkout session lifecycle and the webhook signature boundary; no
// other package imports the provider SDK.
package payment

import (
	"context"
	"errors"
)

// ErrSignatureInvalid is returned when a webhook body fails signature
// verification. The signature is the only authentication on that
// endpoint, so callers must reject the request outright.
var ErrSignatureInvalid = errors.New("webhook signature invalid")

// CheckoutInput describes one hosted-checkout session to create.
type CheckoutInput struct {
	ProductID     string
	ProductName   string
	Price         int64 // minor currency units
	Currency      string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string // optional prefill
}

// Session is the provider's view of one checkout attempt.
type Session struct {
	ID            string
	PaymentStatus string // "paid" once the payment settled
	Email         string
	ProductID     string // from session metadata
	Amount        int64
}

// Event is a verified webhook notification. Session is non-nil only
// for completed-checkout events; other types are acknowledged and
// ignored upstream.
type Event struct {
	Type    string
	Session *Session
}

type Gateway interface {
	CreateCheckout(ctx context.Context, in CheckoutInput) (string, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
	VerifyWebhook(payload []byte, signatureHeader string) (*Event, error)
}
