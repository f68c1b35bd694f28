package routes

import (
	handlers "safeguard/internal/handlers/shared"

	"github.com/gin-gonic/gin"
)

// SetupHelpCenterRoutes wires the read-only help-center directory endpoints.
func SetupHelpCenterRoutes(r *gin.RouterGroup, helpCenterHandler *handlers.HelpCenterHandler) {
	centers := r.Group("/help-centers")
	{
		centers.GET("", helpCenterHandler.GetHelpCenters)
		centers.GET("/nearby", helpCenterHandler.GetNearbyHelpCenters)
	}
}
