package payment_test

import (
	"context"
	"fmt"
	"testing"

	"styledecor/database/repository/memory"
	"styledecor/models"
	"styledecor/services/notification"
	"styledecor/services/payment"
	"styledecor/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	created  []payment.CheckoutSessionRequest
	sessions map[string]*payment.CheckoutSession
	receipts map[string]string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		sessions: map[string]*payment.CheckoutSession{},
		receipts: map[string]string{},
	}
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req payment.CheckoutSessionRequest) (*payment.CheckoutSession, error) {
	g.created = append(g.created, req)
	id := fmt.Sprintf("cs_test_%d", len(g.created))
	sess := &payment.CheckoutSession{ID: id, URL: "https://checkout.example/" + id, PaymentStatus: "unpaid"}
	g.sessions[id] = sess
	return sess, nil
}

func (g *fakeGateway) GetCheckoutSession(_ context.Context, id string) (*payment.CheckoutSession, error) {
	sess, ok := g.sessions[id]
	if !ok {
		return nil, payment.ErrSessionNotFound
	}
	return sess, nil
}

func (g *fakeGateway) ReceiptURL(_ context.Context, piID string) (string, error) {
	return g.receipts[piID], nil
}

type fixture struct {
	svc     *payment.DefaultPaymentService
	store   *memory.Store
	gateway *fakeGateway
}

func newFixture() *fixture {
	store := memory.NewStore()
	gw := newFakeGateway()
	svc := payment.NewPaymentService(store.Bookings(), store.Payments(), gw, notification.NopPublisher{}, "http://localhost:5173/", "USD")
	return &fixture{svc: svc, store: store, gateway: gw}
}

func (f *fixture) seedBooking(t *testing.T, cost float64, paymentStatus string) *models.Booking {
	t.Helper()
	ctx := context.Background()
	svc := &models.Service{Name: "Birthday Setup", Cost: cost}
	require.NoError(t, f.store.Services().Create(ctx, svc))
	b := &models.Booking{
		UserInfo:      models.CustomerInfo{Name: "Ayesha", Email: "ayesha@example.com"},
		ServiceID:     svc.ID,
		PaymentStatus: paymentStatus,
	}
	b.SetStatus(models.BookingPending)
	require.NoError(t, f.store.Bookings().Create(ctx, b))
	return b
}

func TestCreateCheckoutSession_SendsMinorUnits(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(t, 1234.56, models.PaymentPending)

	res, err := f.svc.CreateCheckoutSession(context.Background(), b.ID.Hex(), nil)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", res.SessionID)
	assert.NotEmpty(t, res.URL)

	require.Len(t, f.gateway.created, 1)
	req := f.gateway.created[0]
	assert.Equal(t, int64(123456), req.AmountMinor)
	assert.Equal(t, "usd", req.Currency)
	assert.Equal(t, "Birthday Setup", req.ProductName)
	assert.Equal(t, "ayesha@example.com", req.UserEmail)
	assert.Equal(t, "http://localhost:5173/payment-success?session_id={CHECKOUT_SESSION_ID}", req.SuccessURL)

	payments := f.store.Payments().All()
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentPending, payments[0].Status)
	assert.Equal(t, "USD", payments[0].Currency)
	assert.Equal(t, res.PaymentID, payments[0].ID)
}

func TestCreateCheckoutSession_KeepsCustomerEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.seedBooking(t, 100, models.PaymentPending)

	_, err := f.svc.CreateCheckoutSession(ctx, b.ID.Hex(), &models.Identity{Email: "Admin@Example.com", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, f.gateway.created, 1)
	assert.Equal(t, "ayesha@example.com", f.gateway.created[0].UserEmail)

	customer, err := f.svc.ListByEmail(ctx, "ayesha@example.com")
	require.NoError(t, err)
	assert.Len(t, customer, 1)

	caller, err := f.svc.ListByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Empty(t, caller)
}

func TestCreateCheckoutSession_AlreadyPaid(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(t, 500, models.PaymentPaid)

	_, err := f.svc.CreateCheckoutSession(context.Background(), b.ID.Hex(), nil)
	assert.Equal(t, utils.KindAlreadyPaid, utils.KindOf(err))
	assert.Empty(t, f.gateway.created)
	assert.Empty(t, f.store.Payments().All())
}

func TestCreateCheckoutSession_InvalidAmount(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(t, 0, models.PaymentPending)

	_, err := f.svc.CreateCheckoutSession(context.Background(), b.ID.Hex(), nil)
	assert.Equal(t, utils.KindInvalidAmount, utils.KindOf(err))
	assert.Empty(t, f.gateway.created)
}

func TestCreateCheckoutSession_BadReference(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateCheckoutSession(context.Background(), "nope", nil)
	assert.Equal(t, utils.KindInvalidReference, utils.KindOf(err))

	_, err = f.svc.CreateCheckoutSession(context.Background(), "64b7f0f0f0f0f0f0f0f0f0f0", nil)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestConfirmPayment_MarksBookingPaid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.seedBooking(t, 250, models.PaymentPending)

	res, err := f.svc.CreateCheckoutSession(ctx, b.ID.Hex(), nil)
	require.NoError(t, err)

	sess := f.gateway.sessions[res.SessionID]
	sess.PaymentStatus = payment.ProviderPaid
	sess.PaymentIntentID = "pi_123"
	f.gateway.receipts["pi_123"] = "https://receipts.example/pi_123"

	conf, err := f.svc.ConfirmPayment(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, conf.Payment.Status)
	assert.Equal(t, "pi_123", conf.Payment.StripePaymentIntentID)
	assert.Equal(t, "https://receipts.example/pi_123", conf.Payment.ReceiptURL)

	require.NotNil(t, conf.Booking)
	assert.Equal(t, models.PaymentPaid, conf.Booking.PaymentStatus)
	assert.Equal(t, models.BookingConfirmed, conf.Booking.Status)
	assert.Equal(t, models.BookingConfirmed, conf.Booking.BookingStatus)

	_, err = f.svc.CreateCheckoutSession(ctx, b.ID.Hex(), nil)
	assert.Equal(t, utils.KindAlreadyPaid, utils.KindOf(err))
	assert.Len(t, f.store.Payments().All(), 1)
}

func TestConfirmPayment_UnpaidSessionStillConfirmsBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.seedBooking(t, 250, models.PaymentPending)

	res, err := f.svc.CreateCheckoutSession(ctx, b.ID.Hex(), nil)
	require.NoError(t, err)

	conf, err := f.svc.ConfirmPayment(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "unpaid", conf.Payment.Status)
	require.NotNil(t, conf.Booking)
	assert.Equal(t, models.PaymentPaid, conf.Booking.PaymentStatus)
}

func TestConfirmPayment_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.ConfirmPayment(ctx, "  ")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = f.svc.ConfirmPayment(ctx, "cs_missing")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	f.gateway.sessions["cs_orphan"] = &payment.CheckoutSession{ID: "cs_orphan", PaymentStatus: payment.ProviderPaid}
	_, err = f.svc.ConfirmPayment(ctx, "cs_orphan")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Payment record not found", appErr.Message)
}

func TestListByEmail_ExpandsBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.seedBooking(t, 99.5, models.PaymentPending)
	_, err := f.svc.CreateCheckoutSession(ctx, b.ID.Hex(), nil)
	require.NoError(t, err)

	list, err := f.svc.ListByEmail(ctx, "AYESHA@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Booking)
	assert.Equal(t, "Birthday Setup", list[0].Booking.ServiceName())

	_, err = f.svc.ListByEmail(ctx, "")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}
