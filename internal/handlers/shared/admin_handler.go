package handlers

import (
	"safeguard/internal/services"
	"safeguard/internal/utils"
	"safeguard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService services.AdminService
	logger       *logger.Logger
}

func NewAdminHandler(adminService services.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       log,
	}
}

// GetDashboardStats returns the monitoring dashboard overview.
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err, "Dashboard")
		return
	}

	utils.SuccessResponse(c, "Dashboard stats retrieved successfully", stats)
}
