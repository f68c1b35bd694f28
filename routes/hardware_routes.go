package routes

import (
	handlers "safeguard/internal/handlers/shared"

	"github.com/gin-gonic/gin"
)

// SetupHardwareRoutes wires the device-facing endpoints. These are public:
// IoT buttons authenticate only by their registered device ID.
func SetupHardwareRoutes(r *gin.RouterGroup, hardwareHandler *handlers.HardwareHandler) {
	hardware := r.Group("/hardware")
	{
		hardware.POST("/sos", hardwareHandler.TriggerSOS)
		hardware.POST("/register", hardwareHandler.RegisterDevice)
		hardware.POST("/heartbeat", hardwareHandler.Heartbeat)
	}
}
