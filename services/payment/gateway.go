package payment

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when the provider has no such checkout session.
var ErrSessionNotFound = errors.New("checkout session not found")

// ProviderPaid is the provider's payment-status value for a settled session.
const ProviderPaid = "paid"

// CheckoutSessionRequest describes a single-item hosted checkout.
type CheckoutSessionRequest struct {
	BookingID   string
	UserEmail   string
	ProductName string
	// AmountMinor is the charge in the currency's minor units.
	AmountMinor int64
	Currency    string
	SuccessURL  string
	CancelURL   string
	ExpiresAt   time.Time
}

// CheckoutSession is the provider-side view of a checkout session.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string
	PaymentIntentID string
}

// CheckoutGateway is the hosted-checkout payments provider.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
	// ReceiptURL returns the receipt of the intent's latest charge, or "" if none.
	ReceiptURL(ctx context.Context, paymentIntentID string) (string, error)
}
