package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"styledecor/models"
	"styledecor/services/notification"
	"styledecor/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	problems := utils.ValidateStruct(req)

	var date time.Time
	if req.Date != "" {
		parsed, ok := parseDate(req.Date)
		switch {
		case !ok:
			problems = append(problems, "date must be a valid date")
		case parsed.Before(s.now()):
			problems = append(problems, "Booking date cannot be in the past")
		}
		date = parsed
	}

	serviceDate := date
	if req.ServiceDate != "" {
		parsed, ok := parseDate(req.ServiceDate)
		if !ok {
			problems = append(problems, "serviceDate must be a valid date")
		}
		serviceDate = parsed
	}

	paymentStatus := models.PaymentPending
	if req.PaymentStatus != "" {
		ps, ok := normalizeEnum(req.PaymentStatus, models.PaymentStatuses)
		if !ok {
			problems = append(problems, fmt.Sprintf("paymentStatus must be one of: %s", strings.Join(models.PaymentStatuses, ", ")))
		}
		paymentStatus = ps
	}

	if len(problems) > 0 {
		return nil, utils.ValidationError(problems...)
	}

	serviceID, ok := models.ParseObjectID(req.ServiceID)
	if !ok {
		return nil, utils.InvalidReference("Invalid service ID")
	}
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, utils.Internal("Failed to load service", err)
	}
	if svc == nil {
		return nil, utils.NotFound("Service not found")
	}

	b := &models.Booking{
		UserInfo:        req.UserInfo.toModel(),
		ServiceID:       serviceID,
		Date:            date,
		ServiceDate:     serviceDate,
		ServiceTime:     strings.TrimSpace(req.ServiceTime),
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Location:        req.Location.toModel(),
		PaymentStatus:   paymentStatus,
		StatusSteps:     []models.StatusStep{},
	}
	b.SetStatus(models.BookingPending)

	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, utils.Internal("Failed to create booking", err)
	}
	b.Service = svc
	return b, nil
}

func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.Booking, error) {
	bookingID, ok := models.ParseObjectID(id)
	if !ok {
		return nil, utils.InvalidReference("Invalid booking ID")
	}
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.Internal("Failed to load booking", err)
	}
	if b == nil {
		return nil, utils.NotFound("Booking not found")
	}
	return b, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.load(ctx, id)
}

func (s *DefaultBookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.Bookings.List(ctx, models.BookingFilter{})
	if err != nil {
		return nil, utils.Internal("Failed to list bookings", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListByCustomer(ctx context.Context, email string) ([]models.Booking, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, utils.NewError(utils.KindValidation, "Email is required")
	}
	bookings, err := s.Bookings.List(ctx, models.BookingFilter{CustomerEmail: email})
	if err != nil {
		return nil, utils.Internal("Failed to list bookings", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListDecoratorProjects(ctx context.Context, decoratorKey string) ([]models.DecoratorProject, error) {
	decorator, err := s.Users.GetByFirebaseUID(ctx, decoratorKey)
	if err != nil {
		return nil, utils.Internal("Failed to load decorator", err)
	}
	if decorator == nil {
		if id, ok := models.ParseObjectID(decoratorKey); ok {
			if decorator, err = s.Users.GetByID(ctx, id); err != nil {
				return nil, utils.Internal("Failed to load decorator", err)
			}
		}
	}
	if decorator == nil {
		return nil, utils.NotFound("Decorator not found")
	}
	return s.projects(ctx, decorator.ID)
}

func (s *DefaultBookingService) ListProjectsFor(ctx context.Context, decoratorID string) ([]models.DecoratorProject, error) {
	id, ok := models.ParseObjectID(decoratorID)
	if !ok {
		return nil, utils.InvalidReference("Invalid decorator ID")
	}
	return s.projects(ctx, id)
}

func (s *DefaultBookingService) projects(ctx context.Context, decoratorID primitive.ObjectID) ([]models.DecoratorProject, error) {
	bookings, err := s.Bookings.List(ctx, models.BookingFilter{AssignedDecorator: &decoratorID})
	if err != nil {
		return nil, utils.Internal("Failed to list decorator bookings", err)
	}
	projects := make([]models.DecoratorProject, 0, len(bookings))
	for _, b := range bookings {
		projects = append(projects, ProjectView(b))
	}
	return projects, nil
}

func (s *DefaultBookingService) UpdateBooking(ctx context.Context, id string, req UpdateBookingRequest) (*models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	problems := utils.ValidateStruct(req)
	if req.Date != nil {
		if d, ok := parseDate(*req.Date); ok {
			b.Date = d
		} else {
			problems = append(problems, "Invalid date format")
		}
	}
	if req.ServiceDate != nil {
		if d, ok := parseDate(*req.ServiceDate); ok {
			b.ServiceDate = d
		} else {
			problems = append(problems, "Invalid serviceDate format")
		}
	}
	if req.PaymentStatus != nil {
		if ps, ok := normalizeEnum(*req.PaymentStatus, models.PaymentStatuses); ok {
			b.PaymentStatus = ps
		} else {
			problems = append(problems, fmt.Sprintf("paymentStatus must be one of: %s", strings.Join(models.PaymentStatuses, ", ")))
		}
	}
	status, ok := normalizeOptionalStatus(req.Status)
	if !ok {
		problems = append(problems, fmt.Sprintf("status must be one of: %s", strings.Join(models.BookingStatuses, ", ")))
	}
	bookingStatus, ok := normalizeOptionalStatus(req.BookingStatus)
	if !ok {
		problems = append(problems, fmt.Sprintf("bookingStatus must be one of: %s", strings.Join(models.BookingStatuses, ", ")))
	}
	if len(problems) > 0 {
		return nil, utils.ValidationError(problems...)
	}

	if req.ServiceID != nil {
		serviceID, ok := models.ParseObjectID(*req.ServiceID)
		if !ok {
			return nil, utils.InvalidReference("Invalid service ID")
		}
		svc, err := s.Services.GetByID(ctx, serviceID)
		if err != nil {
			return nil, utils.Internal("Failed to load service", err)
		}
		if svc == nil {
			return nil, utils.NotFound("Service not found")
		}
		b.ServiceID = serviceID
		b.Service = svc
	}
	if req.UserInfo != nil {
		b.UserInfo = req.UserInfo.toModel()
	}
	if req.Location != nil {
		b.Location = req.Location.toModel()
	}
	if req.ServiceTime != nil {
		b.ServiceTime = strings.TrimSpace(*req.ServiceTime)
	}
	if req.SpecialRequests != nil {
		b.SpecialRequests = strings.TrimSpace(*req.SpecialRequests)
	}
	if req.DecoratorEarning != nil {
		earning := *req.DecoratorEarning
		b.DecoratorEarning = &earning
	}
	b.ApplyStatusPatch(status, bookingStatus)

	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, utils.Internal("Failed to update booking", err)
	}
	return b, nil
}

// normalizeOptionalStatus lowercases and checks a status if one was supplied.
func normalizeOptionalStatus(raw *string) (*string, bool) {
	if raw == nil {
		return nil, true
	}
	v, ok := normalizeEnum(*raw, models.BookingStatuses)
	return &v, ok
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	bookingID, ok := models.ParseObjectID(id)
	if !ok {
		return nil, utils.InvalidReference("Invalid booking ID")
	}
	found, err := s.Bookings.SetStatus(ctx, bookingID, models.BookingCancelled)
	if err != nil {
		return nil, utils.Internal("Failed to cancel booking", err)
	}
	if !found {
		return nil, utils.NotFound("Booking not found")
	}
	return s.load(ctx, id)
}

func (s *DefaultBookingService) AssignDecorator(ctx context.Context, bookingID, decoratorID string) (*models.Booking, error) {
	if _, ok := models.ParseObjectID(bookingID); !ok {
		return nil, utils.InvalidReference("Invalid booking ID")
	}
	decID, ok := models.ParseObjectID(decoratorID)
	if !ok {
		return nil, utils.InvalidReference("Invalid decorator ID")
	}

	decorator, err := s.Users.GetByID(ctx, decID)
	if err != nil {
		return nil, utils.Internal("Failed to load decorator", err)
	}
	if decorator == nil {
		return nil, utils.NotFound("Decorator not found")
	}
	if !decorator.IsDecorator() {
		return nil, utils.NewError(utils.KindInvalidRole, "Selected user is not a decorator")
	}

	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	b.AssignedDecorator = &decID
	EnsureStatusSteps(b)
	EnsureDecoratorEarning(b)

	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, utils.Internal("Failed to assign decorator", err)
	}

	notification.PublishBestEffort(ctx, s.Publisher, models.BookingEvent{
		Type:          models.EventDecoratorAssigned,
		BookingID:     b.ID.Hex(),
		CustomerEmail: b.UserInfo.Email,
		DecoratorID:   decID.Hex(),
		Status:        b.Status,
		ServiceName:   b.ServiceName(),
	})
	return b, nil
}

func (s *DefaultBookingService) UpdateStatusStep(ctx context.Context, caller *models.Identity, bookingID string, stepIndex int, completed bool) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if caller == nil || !caller.HasRole(models.RoleAdmin, models.RoleDecorator) {
		return nil, utils.Forbidden("You do not have permission to perform this action")
	}
	if caller.Role == models.RoleDecorator && !b.IsAssignedTo(caller.UserID) {
		return nil, utils.Forbidden("You are not assigned to this booking")
	}
	if stepIndex < 0 || stepIndex >= len(b.StatusSteps) {
		return nil, utils.NewError(utils.KindInvalidIndex, "Invalid step index")
	}

	b.StatusSteps[stepIndex].Completed = completed
	b.SetStatus(DeriveStatus(b.StatusSteps))

	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, utils.Internal("Failed to update status step", err)
	}

	notification.PublishBestEffort(ctx, s.Publisher, models.BookingEvent{
		Type:          models.EventStepUpdated,
		BookingID:     b.ID.Hex(),
		CustomerEmail: b.UserInfo.Email,
		Status:        b.Status,
		ServiceName:   b.ServiceName(),
	})
	return b, nil
}
