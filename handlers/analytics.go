package handlers

import (
	"net/http"

	"styledecor/services/analytics"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	Service analytics.AnalyticsService
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}

func (h *AnalyticsHandler) BookingsTrend(c *gin.Context) {
	points, err := h.Service.BookingsTrend(c.Request.Context(), c.Query("days"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": points})
}

func (h *AnalyticsHandler) RevenueByCategory(c *gin.Context) {
	rows, err := h.Service.RevenueByCategory(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}
