package handlers

import (
	"net/http"

	"styledecor/middleware"
	"styledecor/services/booking"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Service booking.BookingService
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "Invalid request body"))
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.LoggerFromContext(c).Info("Booking created", zap.String("bookingId", b.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"data":    b,
	})
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(bookings), "data": bookings})
}

// ListCustomerBookings lists by customer email; the path segment is named userId for client compatibility.
func (h *BookingHandler) ListCustomerBookings(c *gin.Context) {
	bookings, err := h.Service.ListByCustomer(c.Request.Context(), c.Param("userId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(bookings), "bookings": bookings})
}

func (h *BookingHandler) ListDecoratorBookings(c *gin.Context) {
	projects, err := h.Service.ListDecoratorProjects(c.Request.Context(), c.Param("decoratorKey"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(projects), "bookings": projects})
}

// ListMyProjects serves the approved decorator's own dashboard.
func (h *BookingHandler) ListMyProjects(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	projects, err := h.Service.ListProjectsFor(c.Request.Context(), identity.UserID.Hex())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(projects), "bookings": projects})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": b})
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req booking.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "Invalid request body"))
		return
	}

	b, err := h.Service.UpdateBooking(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated successfully",
		"data":    b,
	})
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
		"data":    b,
	})
}

func (h *BookingHandler) AssignDecorator(c *gin.Context) {
	var req booking.AssignDecoratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "Invalid request body"))
		return
	}

	b, err := h.Service.AssignDecorator(c.Request.Context(), c.Param("id"), req.DecoratorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Decorator assigned successfully",
		"data":    b,
	})
}

func (h *BookingHandler) UpdateStatusStep(c *gin.Context) {
	var req booking.UpdateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StepIndex == nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "A valid stepIndex (number) is required"))
		return
	}

	identity, _ := middleware.GetIdentity(c)
	b, err := h.Service.UpdateStatusStep(c.Request.Context(), identity, c.Param("id"), *req.StepIndex, req.Completed)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated successfully",
		"data":    b,
	})
}
