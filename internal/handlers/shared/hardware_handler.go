package handlers

import (
	"safeguard/internal/services"
	"safeguard/internal/utils"
	"safeguard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HardwareHandler struct {
	hardwareService services.HardwareService
	logger          *logger.Logger
}

func NewHardwareHandler(hardwareService services.HardwareService, log *logger.Logger) *HardwareHandler {
	return &HardwareHandler{
		hardwareService: hardwareService,
		logger:          log,
	}
}

type hardwareSOSRequest struct {
	DeviceID  string   `json:"device_id" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,latitude_wgs84"`
	Longitude *float64 `json:"longitude" binding:"required,longitude_wgs84"`
}

type registerDeviceRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
}

type heartbeatRequest struct {
	DeviceID  string   `json:"device_id" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude_wgs84"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude_wgs84"`
}

// TriggerSOS handles an SOS press from a registered hardware device.
func (h *HardwareHandler) TriggerSOS(c *gin.Context) {
	var request hardwareSOSRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err, "Device ID and location coordinates are required")
		return
	}

	receipt, err := h.hardwareService.TriggerByDevice(
		c.Request.Context(),
		request.DeviceID,
		*request.Latitude,
		*request.Longitude,
	)
	if err != nil {
		respondServiceError(c, h.logger, err, "Device")
		return
	}

	utils.CreatedResponse(c, "Hardware SOS alert triggered successfully", receipt)
}

// RegisterDevice binds a device ID to an existing user.
func (h *HardwareHandler) RegisterDevice(c *gin.Context) {
	var request registerDeviceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err, "Device ID and User ID are required")
		return
	}

	userID, err := primitive.ObjectIDFromHex(request.UserID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	user, err := h.hardwareService.RegisterDevice(c.Request.Context(), userID, request.DeviceID)
	if err != nil {
		respondServiceError(c, h.logger, err, "User")
		return
	}

	utils.SuccessResponse(c, "Device registered successfully", gin.H{
		"device_id": request.DeviceID,
		"user_id":   user.ID,
		"user_name": user.Name,
	})
}

// Heartbeat records a device liveness ping with an optional position.
func (h *HardwareHandler) Heartbeat(c *gin.Context) {
	var request heartbeatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err, "Device ID is required")
		return
	}

	user, err := h.hardwareService.Heartbeat(
		c.Request.Context(),
		request.DeviceID,
		request.Latitude,
		request.Longitude,
	)
	if err != nil {
		respondServiceError(c, h.logger, err, "Device")
		return
	}

	utils.SuccessResponse(c, "Heartbeat received", gin.H{
		"device_id": request.DeviceID,
		"user_id":   user.ID,
	})
}
