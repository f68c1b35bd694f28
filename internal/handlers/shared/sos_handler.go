package handlers

import (
	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"
	"safeguard/internal/services"
	"safeguard/internal/utils"
	"safeguard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SOSHandler struct {
	sosService services.SOSService
	logger     *logger.Logger
}

func NewSOSHandler(sosService services.SOSService, log *logger.Logger) *SOSHandler {
	return &SOSHandler{
		sosService: sosService,
		logger:     log,
	}
}

type triggerSOSRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,latitude_wgs84"`
	Longitude *float64 `json:"longitude" binding:"required,longitude_wgs84"`
	Address   string   `json:"address"`
	Source    string   `json:"source" binding:"omitempty,oneof=web mobile"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=resolved false-alarm"`
	Notes  string `json:"notes"`
}

// TriggerSOS creates a new SOS alert for the authenticated user.
func (h *SOSHandler) TriggerSOS(c *gin.Context) {
	var request triggerSOSRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err, "Location coordinates are required")
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	source := models.SOSSourceWeb
	if request.Source != "" {
		source = models.SOSSource(request.Source)
	}

	receipt, err := h.sosService.TriggerSOS(c.Request.Context(), services.TriggerParams{
		UserID:    userID,
		Latitude:  *request.Latitude,
		Longitude: *request.Longitude,
		Address:   request.Address,
		Source:    source,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "User")
		return
	}

	utils.CreatedResponse(c, "SOS alert triggered successfully", receipt)
}

// GetMyAlerts returns the authenticated user's alert history.
func (h *SOSHandler) GetMyAlerts(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	alerts, total, err := h.sosService.GetUserAlerts(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, h.logger, err, "SOS alert")
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	utils.SuccessResponseWithMeta(c, "SOS alerts retrieved successfully", gin.H{"alerts": alerts}, meta)
}

// GetSOSByID fetches one alert.
func (h *SOSHandler) GetSOSByID(c *gin.Context) {
	sosID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid SOS alert ID")
		return
	}

	alert, err := h.sosService.GetByID(c.Request.Context(), sosID)
	if err != nil {
		respondServiceError(c, h.logger, err, "SOS alert")
		return
	}

	utils.SuccessResponse(c, "SOS alert retrieved successfully", alert)
}

// UpdateStatus transitions an alert to resolved or false-alarm. Transitions
// out of a terminal state are rejected.
func (h *SOSHandler) UpdateStatus(c *gin.Context) {
	sosID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid SOS alert ID")
		return
	}

	var request updateStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err, "Target status must be resolved or false-alarm")
		return
	}

	actorID, ok := callerID(c)
	if !ok {
		return
	}

	alert, err := h.sosService.UpdateStatus(
		c.Request.Context(),
		sosID,
		models.SOSStatus(request.Status),
		actorID,
		request.Notes,
	)
	if err != nil {
		respondServiceError(c, h.logger, err, "SOS alert")
		return
	}

	utils.SuccessResponse(c, "SOS alert status updated successfully", alert)
}

// ListAlerts is the privileged dashboard listing with status/priority filters.
func (h *SOSHandler) ListAlerts(c *gin.Context) {
	filter := interfaces.SOSFilter{
		Status:   models.SOSStatus(c.Query("status")),
		Priority: models.SOSPriority(c.Query("priority")),
	}

	params := utils.GetPaginationParams(c)
	alerts, total, err := h.sosService.ListAlerts(c.Request.Context(), filter, params)
	if err != nil {
		respondServiceError(c, h.logger, err, "SOS alert")
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	utils.SuccessResponseWithMeta(c, "SOS alerts retrieved successfully", gin.H{"alerts": alerts}, meta)
}
