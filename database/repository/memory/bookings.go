package memory

import (
	"context"
	"fmt"
	"time"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepo struct{ s *Store }

func (r *BookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	r.s.bookings[booking.ID] = copyBooking(*booking)
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	out := r.s.expandBooking(b)
	return &out, nil
}

func (r *BookingRepo) List(_ context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.s.bookings {
		if filter.CustomerEmail != "" && b.UserInfo.Email != filter.CustomerEmail {
			continue
		}
		if filter.AssignedDecorator != nil && !b.IsAssignedTo(*filter.AssignedDecorator) {
			continue
		}
		out = append(out, r.s.expandBooking(b))
	}
	sortNewestFirst(out, func(b models.Booking) time.Time { return b.CreatedAt })
	return out, nil
}

func (r *BookingRepo) Save(_ context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[booking.ID]; !ok {
		return fmt.Errorf("booking %s not found", booking.ID.Hex())
	}
	booking.UpdatedAt = r.s.now()
	r.s.bookings[booking.ID] = copyBooking(*booking)
	return nil
}

func (r *BookingRepo) SetStatus(_ context.Context, id primitive.ObjectID, status string) (bool, error) {
	return r.update(id, func(b *models.Booking) { b.SetStatus(status) }), nil
}

func (r *BookingRepo) MarkPaid(_ context.Context, id primitive.ObjectID) (bool, error) {
	return r.update(id, func(b *models.Booking) {
		b.PaymentStatus = models.PaymentPaid
		b.SetStatus(models.BookingConfirmed)
	}), nil
}

func (r *BookingRepo) update(id primitive.ObjectID, mutate func(*models.Booking)) bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return false
	}
	mutate(&b)
	b.UpdatedAt = r.s.now()
	r.s.bookings[id] = b
	return true
}
