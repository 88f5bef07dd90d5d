package controllers

import (
	"net/http"

	"storefront-backend/services"

	"github.com/gin-gonic/gin"
)

// DashboardController handles HTTP requests for dashboard aggregates.
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController.
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetStats handles GET /api/dashboard/stats.
func (dc *DashboardController) GetStats(ctx *gin.Context) {
	stats, svcErr := dc.dashboardService.GetStats(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
