package bookingRepo

import (
	"context"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingRepository defines methods for booking data access.
// Reads return the booking with its service expanded; a missing booking is (nil, nil).
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	// List returns bookings matching filter, newest first.
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	// Save replaces the stored booking with the given one.
	Save(ctx context.Context, booking *models.Booking) error
	// SetStatus sets status and bookingStatus only. It reports whether the booking existed.
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (bool, error)
	// MarkPaid sets paymentStatus=paid and status=bookingStatus=confirmed.
	MarkPaid(ctx context.Context, id primitive.ObjectID) (bool, error)
}
