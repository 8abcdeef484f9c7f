package booking

import (
	"context"
	"time"

	bookingRepo "styledecor/database/repository/booking"
	serviceRepo "styledecor/database/repository/service"
	userRepo "styledecor/database/repository/user"
	"styledecor/models"
	"styledecor/services/notification"
)

// BookingService owns the booking lifecycle.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	ListByCustomer(ctx context.Context, email string) ([]models.Booking, error)
	// ListDecoratorProjects resolves decoratorKey as a provider subject id, then a local id.
	ListDecoratorProjects(ctx context.Context, decoratorKey string) ([]models.DecoratorProject, error)
	ListProjectsFor(ctx context.Context, decoratorID string) ([]models.DecoratorProject, error)
	UpdateBooking(ctx context.Context, id string, req UpdateBookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) (*models.Booking, error)
	AssignDecorator(ctx context.Context, bookingID, decoratorID string) (*models.Booking, error)
	UpdateStatusStep(ctx context.Context, caller *models.Identity, bookingID string, stepIndex int, completed bool) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Services  serviceRepo.ServiceRepository
	Users     userRepo.UserRepository
	Publisher notification.Publisher
	// Now is the clock used for past-date checks; defaults to time.Now.
	Now func() time.Time
}

func NewBookingService(
	bookings bookingRepo.BookingRepository,
	services serviceRepo.ServiceRepository,
	users userRepo.UserRepository,
	publisher notification.Publisher,
) *DefaultBookingService {
	return &DefaultBookingService{
		Bookings:  bookings,
		Services:  services,
		Users:     users,
		Publisher: publisher,
		Now:       time.Now,
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
