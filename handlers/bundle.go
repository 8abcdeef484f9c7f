package handlers

import (
	"styledecor/services/analytics"
	"styledecor/services/auth"
	"styledecor/services/booking"
	"styledecor/services/catalog"
	"styledecor/services/payment"
	"styledecor/services/user"

	"github.com/gin-gonic/gin"
)

// Services are the domain services the HTTP layer is built on.
type Services struct {
	Bookings  booking.BookingService
	Payments  payment.PaymentService
	Catalog   catalog.CatalogService
	Users     user.UserService
	Analytics analytics.AnalyticsService
	Resolver  *auth.Resolver
}

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Resolver *auth.Resolver

	// Booking endpoints
	CreateBooking           gin.HandlerFunc
	ListBookings            gin.HandlerFunc
	ListCustomerBookings    gin.HandlerFunc
	ListDecoratorBookings   gin.HandlerFunc
	GetBooking              gin.HandlerFunc
	UpdateBooking           gin.HandlerFunc
	CancelBooking           gin.HandlerFunc
	AssignDecorator         gin.HandlerFunc
	UpdateBookingStatus     gin.HandlerFunc
	ListMyDecoratorProjects gin.HandlerFunc

	// Payment endpoints
	CreateCheckoutSession gin.HandlerFunc
	ConfirmPayment        gin.HandlerFunc
	ListPayments          gin.HandlerFunc

	// Catalog endpoints
	ListServices       gin.HandlerFunc
	FeaturedServices   gin.HandlerFunc
	ServiceCategories  gin.HandlerFunc
	GetService         gin.HandlerFunc
	CreateService      gin.HandlerFunc
	UpdateService      gin.HandlerFunc
	DeleteService      gin.HandlerFunc
	UploadServiceImage gin.HandlerFunc

	// User endpoints
	SyncUser               gin.HandlerFunc
	ListUsers              gin.HandlerFunc
	SearchUser             gin.HandlerFunc
	GetUser                gin.HandlerFunc
	UpdateUserRole         gin.HandlerFunc
	ListDecorators         gin.HandlerFunc
	MakeDecorator          gin.HandlerFunc
	SetDecoratorApproval   gin.HandlerFunc
	UpdateDecoratorProfile gin.HandlerFunc

	// Auth endpoints
	Register gin.HandlerFunc
	Login    gin.HandlerFunc
	Me       gin.HandlerFunc

	// Analytics endpoints
	AnalyticsSummary  gin.HandlerFunc
	BookingsTrend     gin.HandlerFunc
	RevenueByCategory gin.HandlerFunc

	Health gin.HandlerFunc
}

func NewHandlerBundle(s Services) *HandlerBundle {
	bh := &BookingHandler{Service: s.Bookings}
	ph := &PaymentHandler{Service: s.Payments}
	ch := &CatalogHandler{Service: s.Catalog}
	uh := &UserHandler{Service: s.Users}
	ah := &AnalyticsHandler{Service: s.Analytics}

	return &HandlerBundle{
		Resolver: s.Resolver,

		CreateBooking:           bh.CreateBooking,
		ListBookings:            bh.ListBookings,
		ListCustomerBookings:    bh.ListCustomerBookings,
		ListDecoratorBookings:   bh.ListDecoratorBookings,
		GetBooking:              bh.GetBooking,
		UpdateBooking:           bh.UpdateBooking,
		CancelBooking:           bh.CancelBooking,
		AssignDecorator:         bh.AssignDecorator,
		UpdateBookingStatus:     bh.UpdateStatusStep,
		ListMyDecoratorProjects: bh.ListMyProjects,

		CreateCheckoutSession: ph.CreateCheckoutSession,
		ConfirmPayment:        ph.ConfirmPayment,
		ListPayments:          ph.ListByEmail,

		ListServices:       ch.List,
		FeaturedServices:   ch.Featured,
		ServiceCategories:  ch.Categories,
		GetService:         ch.Get,
		CreateService:      ch.Create,
		UpdateService:      ch.Update,
		DeleteService:      ch.Delete,
		UploadServiceImage: ch.UploadImage,

		SyncUser:               uh.Sync,
		ListUsers:              uh.List,
		SearchUser:             uh.Search,
		GetUser:                uh.Get,
		UpdateUserRole:         uh.UpdateRole,
		ListDecorators:         uh.ListDecorators,
		MakeDecorator:          uh.MakeDecorator,
		SetDecoratorApproval:   uh.SetApproval,
		UpdateDecoratorProfile: uh.UpdateDecoratorProfile,

		Register: uh.Register,
		Login:    uh.Login,
		Me:       uh.Me,

		AnalyticsSummary:  ah.Summary,
		BookingsTrend:     ah.BookingsTrend,
		RevenueByCategory: ah.RevenueByCategory,

		Health: HealthCheck,
	}
}
