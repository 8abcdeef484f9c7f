package paymentRepo

import (
	"context"

	"styledecor/models"
)

// PaymentRepository defines methods for payment data access.
// A missing payment is reported as (nil, nil).
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	// ListByEmail returns the payer's payments newest first, with booking and service expanded.
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
}
