package handlers

import (
	"net/http"

	"styledecor/middleware"
	"styledecor/services/payment"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Service payment.PaymentService
}

func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.InvalidReference("Valid bookingId is required"))
		return
	}

	identity, _ := middleware.GetIdentity(c)
	result, err := h.Service.CreateCheckoutSession(c.Request.Context(), input.BookingID, identity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.LoggerFromContext(c).Info("Checkout session created",
		zap.String("bookingId", input.BookingID), zap.String("sessionId", result.SessionID))
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Checkout session created successfully",
		"url":       result.URL,
		"sessionId": result.SessionID,
		"paymentId": result.PaymentID,
	})
}

func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "sessionId is required"))
		return
	}

	result, err := h.Service.ConfirmPayment(c.Request.Context(), input.SessionID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if result.Booking == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Payment status updated",
			"payment": result.Payment,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment confirmed successfully",
		"payment": result.Payment,
		"booking": result.Booking,
	})
}

func (h *PaymentHandler) ListByEmail(c *gin.Context) {
	payments, err := h.Service.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(payments), "data": payments})
}
