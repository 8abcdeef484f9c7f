package notification

import (
	"context"
	"fmt"

	userRepo "styledecor/database/repository/user"
	"styledecor/models"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MessageSender is the subset of the FCM client used to deliver pushes.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushService turns booking events into FCM pushes for the affected accounts.
type PushService struct {
	Users  userRepo.UserRepository
	Sender MessageSender
	Logger *zap.Logger
}

func NewPushService(users userRepo.UserRepository, sender MessageSender, logger *zap.Logger) *PushService {
	return &PushService{Users: users, Sender: sender, Logger: logger}
}

// HandleBookingEvent delivers the push for event. Recipients without an FCM token are skipped.
func (s *PushService) HandleBookingEvent(ctx context.Context, event models.BookingEvent) error {
	recipient, err := s.recipient(ctx, event)
	if err != nil {
		return err
	}
	if recipient == nil || recipient.FCMToken == "" {
		s.Logger.Debug("no push target for booking event",
			zap.String("type", event.Type), zap.String("bookingId", event.BookingID))
		return nil
	}

	title, body := render(event)
	msg := &messaging.Message{
		Token:        recipient.FCMToken,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data: map[string]string{
			"type":      event.Type,
			"bookingId": event.BookingID,
			"role":      recipient.Role,
		},
		Android: &messaging.AndroidConfig{Priority: "high"},
	}
	if _, err := s.Sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

func (s *PushService) recipient(ctx context.Context, event models.BookingEvent) (*models.User, error) {
	if event.Type == models.EventDecoratorAssigned {
		id, err := primitive.ObjectIDFromHex(event.DecoratorID)
		if err != nil {
			return nil, nil
		}
		return s.Users.GetByID(ctx, id)
	}
	return s.Users.GetByEmail(ctx, event.CustomerEmail)
}

func render(event models.BookingEvent) (string, string) {
	name := event.ServiceName
	if name == "" {
		name = "your booking"
	}
	switch event.Type {
	case models.EventDecoratorAssigned:
		return "New project assigned", fmt.Sprintf("You have been assigned to %s.", name)
	case models.EventPaymentConfirmed:
		return "Payment received", fmt.Sprintf("Your payment for %s is confirmed.", name)
	default:
		return "Booking update", fmt.Sprintf("Status of %s: %s.", name, event.Status)
	}
}
