package handlers

import (
	"net/http"
	"time"

	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness plus the last dependency snapshot.
func HealthCheck(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "ok",
		"message":   "StyleDecor API is running",
		"timestamp": time.Now().UTC(),
		"services":  status,
	})
}
