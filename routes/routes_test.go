package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"styledecor/database/repository/memory"
	"styledecor/handlers"
	"styledecor/models"
	"styledecor/routes"
	"styledecor/services/analytics"
	"styledecor/services/auth"
	"styledecor/services/booking"
	"styledecor/services/catalog"
	"styledecor/services/notification"
	"styledecor/services/payment"
	"styledecor/services/user"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "routes-test-secret"

type noGateway struct{}

func (noGateway) CreateCheckoutSession(context.Context, payment.CheckoutSessionRequest) (*payment.CheckoutSession, error) {
	return &payment.CheckoutSession{ID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}

func (noGateway) GetCheckoutSession(context.Context, string) (*payment.CheckoutSession, error) {
	return nil, payment.ErrSessionNotFound
}

func (noGateway) ReceiptURL(context.Context, string) (string, error) { return "", nil }

type app struct {
	router *gin.Engine
	store  *memory.Store
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	users := store.Users()

	resolver := auth.NewResolver(users, nil, auth.NewJWTVerifier(jwtSecret, users))
	hb := handlers.NewHandlerBundle(handlers.Services{
		Bookings:  booking.NewBookingService(store.Bookings(), store.Services(), users, notification.NopPublisher{}),
		Payments:  payment.NewPaymentService(store.Bookings(), store.Payments(), noGateway{}, notification.NopPublisher{}, "http://localhost:5173", "usd"),
		Catalog:   catalog.NewCatalogService(store.Services(), nil),
		Users:     user.NewUserService(users, jwtSecret, time.Hour),
		Analytics: analytics.NewAnalyticsService(store.Analytics(), store.Services(), users),
		Resolver:  resolver,
	})

	router := gin.New()
	routes.RegisterRoutes(router, hb, 1000)
	return &app{router: router, store: store}
}

func (a *app) seedUser(t *testing.T, email, role string, approved bool) (*models.User, string) {
	t.Helper()
	u := &models.User{Account: models.Account{Name: role, Email: email, IsActive: true}}
	u.SetRole(role)
	if u.Decorator != nil {
		u.Decorator.IsApproved = approved
	}
	require.NoError(t, a.store.Users().Create(context.Background(), u))
	token, err := utils.GenerateToken([]byte(jwtSecret), u.ID.Hex(), u.Email, time.Hour)
	require.NoError(t, err)
	return u, token
}

func (a *app) call(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	return data
}

func TestBookingScenario(t *testing.T) {
	a := newApp(t)
	_, adminToken := a.seedUser(t, "admin@example.com", models.RoleAdmin, false)
	decorator, decoratorToken := a.seedUser(t, "deco@example.com", models.RoleDecorator, true)

	code, body := a.call(t, "POST", "/api/services", adminToken, map[string]interface{}{
		"service_name": "Wedding Stage",
		"cost":         50000,
		"unit":         "per event",
		"category":     "wedding",
		"description":  "Full stage decoration",
		"image":        "https://example.com/stage.jpg",
	})
	require.Equal(t, http.StatusCreated, code, body)
	serviceID := dataOf(t, body)["_id"].(string)

	code, body = a.call(t, "POST", "/api/auth/register", "", map[string]string{
		"name": "Ayesha", "email": "ayesha@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code, body)
	customerToken := dataOf(t, body)["token"].(string)

	code, body = a.call(t, "POST", "/api/bookings", customerToken, map[string]interface{}{
		"userInfo":  map[string]string{"name": "Ayesha", "email": "ayesha@example.com", "phone": "01700000000"},
		"serviceId": serviceID,
		"date":      time.Now().Add(48 * time.Hour).UTC().Format("2006-01-02"),
		"location":  map[string]string{"address": "12 Lake Road", "city": "Dhaka"},
	})
	require.Equal(t, http.StatusCreated, code, body)
	created := dataOf(t, body)
	bookingID := created["_id"].(string)
	assert.Equal(t, models.BookingPending, created["status"])
	assert.Equal(t, "Wedding Stage", created["serviceName"])

	code, _ = a.call(t, "PATCH", "/api/bookings/"+bookingID+"/assign", customerToken, map[string]string{"decoratorId": decorator.ID.Hex()})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = a.call(t, "PATCH", "/api/bookings/"+bookingID+"/assign", adminToken, map[string]string{"decoratorId": decorator.ID.Hex()})
	require.Equal(t, http.StatusOK, code, body)
	assigned := dataOf(t, body)
	assert.Len(t, assigned["statusSteps"], 4)
	assert.Equal(t, 35000.0, assigned["decoratorEarning"])

	code, body = a.call(t, "PATCH", "/api/bookings/"+bookingID+"/status", decoratorToken, map[string]interface{}{"completed": true})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "A valid stepIndex (number) is required", body["message"])

	code, body = a.call(t, "PATCH", "/api/bookings/"+bookingID+"/status", decoratorToken, map[string]interface{}{"stepIndex": -1, "completed": true})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid step index", body["message"])

	want := []string{models.BookingConfirmed, models.BookingInProgress, models.BookingInProgress, models.BookingCompleted}
	for i, status := range want {
		code, body = a.call(t, "PATCH", "/api/bookings/"+bookingID+"/status", decoratorToken, map[string]interface{}{"stepIndex": i, "completed": true})
		require.Equal(t, http.StatusOK, code, body)
		assert.Equal(t, status, dataOf(t, body)["status"])
	}

	// Steps and assignment only change through their own endpoints.
	code, body = a.call(t, "PUT", "/api/bookings/"+bookingID, "", map[string]interface{}{
		"specialRequests":   "Blue theme",
		"statusSteps":       []interface{}{},
		"assignedDecorator": "64b7f0f0f0f0f0f0f0f0f0f0",
	})
	require.Equal(t, http.StatusOK, code, body)
	updated := dataOf(t, body)
	assert.Equal(t, "Blue theme", updated["specialRequests"])
	assert.Len(t, updated["statusSteps"], 4)
	assert.Equal(t, decorator.ID.Hex(), updated["assignedDecorator"])
	assert.Equal(t, models.BookingCompleted, updated["status"])

	code, body = a.call(t, "GET", "/api/decorator/bookings", decoratorToken, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, 1.0, body["count"])

	code, body = a.call(t, "GET", "/api/bookings/user/ayesha@example.com", "", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, 1.0, body["count"])

	code, _ = a.call(t, "GET", "/api/bookings", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = a.call(t, "GET", "/api/bookings", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.0, body["count"])
}

func TestPendingDecoratorCannotSeeDashboard(t *testing.T) {
	a := newApp(t)
	_, token := a.seedUser(t, "pending@example.com", models.RoleDecorator, false)

	code, body := a.call(t, "GET", "/api/decorator/bookings", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Your decorator account is pending approval. Please contact admin.", body["message"])
}

func TestAuthenticationRequired(t *testing.T) {
	a := newApp(t)

	code, body := a.call(t, "POST", "/api/bookings", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, false, body["success"])

	code, _ = a.call(t, "GET", "/api/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLoginAndMe(t *testing.T) {
	a := newApp(t)
	code, _ := a.call(t, "POST", "/api/auth/register", "", map[string]string{
		"name": "Tariq", "email": "tariq@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)

	code, body := a.call(t, "POST", "/api/auth/login", "", map[string]string{"email": "tariq@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, code, body)
	token := dataOf(t, body)["token"].(string)

	code, body = a.call(t, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "tariq@example.com", dataOf(t, body)["email"])

	code, body = a.call(t, "POST", "/api/auth/login", "", map[string]string{"email": "tariq@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestPublicCatalogAndFallbacks(t *testing.T) {
	a := newApp(t)

	code, body := a.call(t, "GET", "/api/services?page=1&limit=5", "", nil)
	require.Equal(t, http.StatusOK, code)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, 5.0, pagination["itemsPerPage"])

	code, body = a.call(t, "GET", "/api/services/not-an-id", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Service not found", body["message"])

	code, body = a.call(t, "GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, body = a.call(t, "GET", "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Route not found", body["message"])
}
