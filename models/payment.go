package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records one checkout attempt for a booking. Status is pending at
// creation and afterwards mirrors the provider's payment status.
type Payment struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookingID             primitive.ObjectID `bson:"booking" json:"bookingId"`
	UserEmail             string             `bson:"userEmail" json:"userEmail"`
	Amount                float64            `bson:"amount" json:"amount"`
	Currency              string             `bson:"currency" json:"currency"`
	Status                string             `bson:"status" json:"status"`
	StripeSessionID       string             `bson:"stripeSessionId" json:"stripeSessionId"`
	StripePaymentIntentID string             `bson:"stripePaymentIntentId,omitempty" json:"stripePaymentIntentId,omitempty"`
	ReceiptURL            string             `bson:"receiptUrl,omitempty" json:"receiptUrl,omitempty"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Booking is the expanded booking (with its service); never persisted.
	Booking *Booking `bson:"-" json:"booking,omitempty"`
}

// CheckoutResult is returned to the client after a hosted checkout session is created.
type CheckoutResult struct {
	URL       string             `json:"url"`
	SessionID string             `json:"sessionId"`
	PaymentID primitive.ObjectID `json:"paymentId"`
}

// PaymentConfirmation is the outcome of reconciling a checkout session.
type PaymentConfirmation struct {
	Payment *Payment `json:"payment"`
	Booking *Booking `json:"booking,omitempty"`
}
