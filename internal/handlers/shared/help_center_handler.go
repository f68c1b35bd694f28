package handlers

import (
	"strconv"

	"safeguard/internal/models"
	"safeguard/internal/services"
	"safeguard/internal/utils"
	"safeguard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type HelpCenterHandler struct {
	helpCenterService services.HelpCenterService
	logger            *logger.Logger
}

func NewHelpCenterHandler(helpCenterService services.HelpCenterService, log *logger.Logger) *HelpCenterHandler {
	return &HelpCenterHandler{
		helpCenterService: helpCenterService,
		logger:            log,
	}
}

// GetHelpCenters lists active help centers, optionally filtered by type.
func (h *HelpCenterHandler) GetHelpCenters(c *gin.Context) {
	centerType := models.HelpCenterType(c.Query("type"))

	centers, err := h.helpCenterService.GetActiveCenters(c.Request.Context(), centerType)
	if err != nil {
		respondServiceError(c, h.logger, err, "Help center")
		return
	}

	utils.SuccessResponseWithMeta(c, "Help centers retrieved successfully", gin.H{"help_centers": centers}, &utils.Meta{
		Count: len(centers),
	})
}

// GetNearbyHelpCenters ranks active centers by distance from a point.
func (h *HelpCenterHandler) GetNearbyHelpCenters(c *gin.Context) {
	latitude, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	longitude, lngErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr != nil || lngErr != nil {
		utils.BadRequestResponse(c, "Latitude and longitude are required")
		return
	}

	nearby, err := h.helpCenterService.GetNearbyCenters(c.Request.Context(), latitude, longitude)
	if err != nil {
		respondServiceError(c, h.logger, err, "Help center")
		return
	}

	utils.SuccessResponseWithMeta(c, "Nearby help centers retrieved successfully", gin.H{"help_centers": nearby}, &utils.Meta{
		Count: len(nearby),
	})
}
