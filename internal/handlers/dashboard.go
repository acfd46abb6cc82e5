package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardStats handles GET /api/v1/dashboard/stats
func (h *Handlers) DashboardStats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err, "Stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
