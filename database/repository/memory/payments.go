package memory

import (
	"context"
	"fmt"
	"time"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentRepo struct{ s *Store }

func (r *PaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	stored := *payment
	stored.Booking = nil
	r.s.payments[payment.ID] = stored
	return nil
}

func (r *PaymentRepo) GetBySessionID(_ context.Context, sessionID string) (*models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.payments {
		if p.StripeSessionID == sessionID {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *PaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.payments[payment.ID]; !ok {
		return fmt.Errorf("payment %s not found", payment.ID.Hex())
	}
	payment.UpdatedAt = r.s.now()
	stored := *payment
	stored.Booking = nil
	r.s.payments[payment.ID] = stored
	return nil
}

func (r *PaymentRepo) ListByEmail(_ context.Context, email string) ([]models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Payment{}
	for _, p := range r.s.payments {
		if p.UserEmail != email {
			continue
		}
		if b, ok := r.s.bookings[p.BookingID]; ok {
			expanded := r.s.expandBooking(b)
			p.Booking = &expanded
		}
		out = append(out, p)
	}
	sortNewestFirst(out, func(p models.Payment) time.Time { return p.CreatedAt })
	return out, nil
}

// All returns every stored payment, for inspection in tests and local tooling.
func (r *PaymentRepo) All() []models.Payment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Payment, 0, len(r.s.payments))
	for _, p := range r.s.payments {
		out = append(out, p)
	}
	return out
}
