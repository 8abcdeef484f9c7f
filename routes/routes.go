package routes

import (
	"net/http"
	"time"

	"styledecor/handlers"
	"styledecor/middleware"
	"styledecor/models"
	"styledecor/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.HybridAuth(hb.Resolver)
	api := r.Group("/api/bookings")
	{
		api.POST("", auth, hb.CreateBooking)
		api.GET("", auth, middleware.RestrictTo(models.RoleAdmin), hb.ListBookings)

		// Open endpoints kept for existing clients.
		api.GET("/user/:userId", hb.ListCustomerBookings)
		api.GET("/:id", hb.GetBooking)
		api.PUT("/:id", hb.UpdateBooking)
		api.DELETE("/:id", hb.CancelBooking)

		api.GET("/decorator/:decoratorKey", auth, hb.ListDecoratorBookings)
		api.PATCH("/:id/assign", auth, middleware.RestrictTo(models.RoleAdmin), hb.AssignDecorator)
		api.PATCH("/:id/status", auth, middleware.RestrictTo(models.RoleDecorator, models.RoleAdmin), hb.UpdateBookingStatus)
	}
}

// RegisterPaymentRoutes registers checkout and payment history endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.HybridAuth(hb.Resolver))
		api.POST("/create-checkout-session", hb.CreateCheckoutSession)
		api.POST("/confirm", hb.ConfirmPayment)
		api.GET("/user/:email", hb.ListPayments)
	}
}

// RegisterServiceRoutes registers the public catalog and its admin management.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.ListServices)
		api.GET("/featured", hb.FeaturedServices)
		api.GET("/categories", hb.ServiceCategories)
		api.GET("/:id", hb.GetService)

		admin := api.Group("")
		admin.Use(middleware.HybridAuth(hb.Resolver), middleware.RestrictTo(models.RoleAdmin))
		admin.POST("", hb.CreateService)
		admin.POST("/upload-image", hb.UploadServiceImage)
		admin.PUT("/:id", hb.UpdateService)
		admin.DELETE("/:id", hb.DeleteService)
	}
}

// RegisterUserRoutes registers account, role and decorator management endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.HybridAuth(hb.Resolver)
	adminOnly := middleware.RestrictTo(models.RoleAdmin)

	api := r.Group("/api")
	{
		api.POST("/users", hb.SyncUser)
		api.GET("/users", auth, adminOnly, hb.ListUsers)
		api.GET("/users/search", auth, adminOnly, hb.SearchUser)
		api.GET("/users/:userId", auth, hb.GetUser)
		api.PATCH("/users/:userId/role", auth, adminOnly, hb.UpdateUserRole)

		api.GET("/decorators", auth, adminOnly, hb.ListDecorators)
		api.POST("/decorators/make", auth, adminOnly, hb.MakeDecorator)
		api.PATCH("/decorators/:decoratorId/approval", auth, adminOnly, hb.SetDecoratorApproval)

		api.PATCH("/decorator/profile", auth, middleware.RestrictTo(models.RoleDecorator), hb.UpdateDecoratorProfile)
		api.GET("/decorator/bookings", auth, middleware.RequireApprovedDecorator(), hb.ListMyDecoratorProjects)
	}
}

// RegisterAuthRoutes registers password registration and login.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Register)
		api.POST("/login", hb.Login)
		api.GET("/me", middleware.HybridAuth(hb.Resolver), hb.Me)
	}
}

// RegisterAnalyticsRoutes registers the admin dashboard endpoints.
func RegisterAnalyticsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/analytics")
	{
		api.Use(middleware.HybridAuth(hb.Resolver), middleware.RestrictTo(models.RoleAdmin))
		api.GET("/summary", hb.AnalyticsSummary)
		api.GET("/bookings-trend", hb.BookingsTrend)
		api.GET("/revenue-by-category", hb.RevenueByCategory)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAnalyticsRoutes(r, hb)
	RegisterUserRoutes(r, hb)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})
}
