package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "styledecor/database/repository/booking"
	paymentRepo "styledecor/database/repository/payment"
	"styledecor/models"
	"styledecor/services/notification"
	"styledecor/utils"

	"go.uber.org/zap"
)

const (
	defaultProductName = "StyleDecor Service Booking"
	sessionTTL         = time.Hour
)

// PaymentService reconciles hosted checkout sessions with bookings.
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, bookingID string, caller *models.Identity) (*models.CheckoutResult, error)
	ConfirmPayment(ctx context.Context, sessionID string) (*models.PaymentConfirmation, error)
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Bookings  bookingRepo.BookingRepository
	Payments  paymentRepo.PaymentRepository
	Gateway   CheckoutGateway
	Publisher notification.Publisher
	// ClientURL is the storefront base used for checkout redirects.
	ClientURL string
	// Currency is the lowercase ISO code sent to the provider.
	Currency string
	Now      func() time.Time
}

func NewPaymentService(
	bookings bookingRepo.BookingRepository,
	payments paymentRepo.PaymentRepository,
	gateway CheckoutGateway,
	publisher notification.Publisher,
	clientURL, currency string,
) *DefaultPaymentService {
	return &DefaultPaymentService{
		Bookings:  bookings,
		Payments:  payments,
		Gateway:   gateway,
		Publisher: publisher,
		ClientURL: strings.TrimRight(clientURL, "/"),
		Currency:  strings.ToLower(currency),
		Now:       time.Now,
	}
}

func (s *DefaultPaymentService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultPaymentService) CreateCheckoutSession(ctx context.Context, bookingID string, caller *models.Identity) (*models.CheckoutResult, error) {
	id, ok := models.ParseObjectID(bookingID)
	if !ok {
		return nil, utils.InvalidReference("Valid bookingId is required")
	}
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("Failed to load booking", err)
	}
	if b == nil {
		return nil, utils.NotFound("Booking not found")
	}
	if b.PaymentStatus == models.PaymentPaid {
		return nil, utils.NewError(utils.KindAlreadyPaid, "This booking is already paid")
	}
	if b.Service == nil || b.Service.Cost <= 0 {
		return nil, utils.NewError(utils.KindInvalidAmount, "Invalid service cost for this booking")
	}

	// Payments are filed under the booking's customer, whoever starts the checkout.
	userEmail := b.UserInfo.Email
	if caller != nil && caller.Email != "" && models.NormalizeEmail(caller.Email) != userEmail {
		zap.L().Info("checkout started on behalf of customer",
			zap.String("bookingId", b.ID.Hex()), zap.String("callerId", caller.UserID.Hex()))
	}
	productName := b.Service.Name
	if productName == "" {
		productName = defaultProductName
	}

	sess, err := s.Gateway.CreateCheckoutSession(ctx, CheckoutSessionRequest{
		BookingID:   b.ID.Hex(),
		UserEmail:   userEmail,
		ProductName: productName,
		AmountMinor: utils.ToMinorUnits(b.Service.Cost),
		Currency:    s.Currency,
		SuccessURL:  s.ClientURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.ClientURL + "/bookings?canceled=true",
		ExpiresAt:   s.now().Add(sessionTTL),
	})
	if err != nil {
		return nil, utils.Internal("Failed to create checkout session", err)
	}

	p := &models.Payment{
		BookingID:       b.ID,
		UserEmail:       userEmail,
		Amount:          b.Service.Cost,
		Currency:        strings.ToUpper(s.Currency),
		Status:          models.PaymentPending,
		StripeSessionID: sess.ID,
	}
	if err := s.Payments.Create(ctx, p); err != nil {
		// The provider session stays open until it expires; confirm is keyed by session id.
		return nil, utils.Internal("Failed to record payment", err)
	}

	return &models.CheckoutResult{URL: sess.URL, SessionID: sess.ID, PaymentID: p.ID}, nil
}

func (s *DefaultPaymentService) ConfirmPayment(ctx context.Context, sessionID string) (*models.PaymentConfirmation, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, utils.NewError(utils.KindValidation, "sessionId is required")
	}

	sess, err := s.Gateway.GetCheckoutSession(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, utils.NotFound("Checkout session not found")
	} else if err != nil {
		return nil, utils.Internal("Failed to retrieve checkout session", err)
	}

	receiptURL := ""
	if sess.PaymentIntentID != "" {
		if receiptURL, err = s.Gateway.ReceiptURL(ctx, sess.PaymentIntentID); err != nil {
			return nil, utils.Internal("Failed to retrieve payment intent", err)
		}
	}

	p, err := s.Payments.GetBySessionID(ctx, sess.ID)
	if err != nil {
		return nil, utils.Internal("Failed to load payment", err)
	}
	if p == nil {
		return nil, utils.NotFound("Payment record not found")
	}

	p.Status = mapProviderStatus(sess.PaymentStatus)
	if sess.PaymentIntentID != "" {
		p.StripePaymentIntentID = sess.PaymentIntentID
	}
	if receiptURL != "" {
		p.ReceiptURL = receiptURL
	}
	if err := s.Payments.Update(ctx, p); err != nil {
		return nil, utils.Internal("Failed to update payment", err)
	}

	result := &models.PaymentConfirmation{Payment: p}
	if p.BookingID.IsZero() {
		return result, nil
	}

	found, err := s.Bookings.MarkPaid(ctx, p.BookingID)
	if err != nil {
		return nil, utils.Internal("Failed to update booking", err)
	}
	if !found {
		zap.L().Warn("payment references a missing booking",
			zap.String("paymentId", p.ID.Hex()), zap.String("bookingId", p.BookingID.Hex()))
		return result, nil
	}
	b, err := s.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, utils.Internal("Failed to load booking", err)
	}
	result.Booking = b

	if b != nil {
		notification.PublishBestEffort(ctx, s.Publisher, models.BookingEvent{
			Type:          models.EventPaymentConfirmed,
			BookingID:     b.ID.Hex(),
			CustomerEmail: b.UserInfo.Email,
			Status:        b.Status,
			ServiceName:   b.ServiceName(),
		})
	}
	return result, nil
}

// mapProviderStatus maps the provider's "paid" to ours and passes anything else through.
func mapProviderStatus(providerStatus string) string {
	if providerStatus == ProviderPaid {
		return models.PaymentPaid
	}
	return providerStatus
}

func (s *DefaultPaymentService) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, utils.NewError(utils.KindValidation, "Email is required")
	}
	payments, err := s.Payments.ListByEmail(ctx, email)
	if err != nil {
		return nil, utils.Internal(fmt.Sprintf("Failed to list payments for %s", email), err)
	}
	return payments, nil
}
