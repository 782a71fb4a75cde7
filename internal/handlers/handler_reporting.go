package handlers

import (
	"net/http"

	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the admin dashboard
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

func registerReportingRoutes(admin *gin.RouterGroup, h *reportingHandler) {
	admin.GET("/stats", h.getDashboardStats)
}

// getDashboardStats godoc
// @Summary Admin dashboard statistics
// @Description Counts of users, bookings, posts and pending work, plus revenue for the last twelve months.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Failed to compute statistics"
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *reportingHandler) getDashboardStats(c *gin.Context) {
	stats, err := h.reportingService.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardStatsResponse(stats))
}
