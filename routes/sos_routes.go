package routes

import (
	handlers "safeguard/internal/handlers/shared"
	"safeguard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSOSRoutes wires the SOS trigger, query and transition endpoints.
func SetupSOSRoutes(r *gin.RouterGroup, sosHandler *handlers.SOSHandler, jwtSecret string) {
	sos := r.Group("/sos")
	sos.Use(middleware.AuthRequired(jwtSecret))
	{
		sos.POST("/trigger", sosHandler.TriggerSOS)
		sos.GET("/my-alerts", sosHandler.GetMyAlerts)
		sos.GET("/:id", sosHandler.GetSOSByID)
	}

	// Status transitions are restricted to privileged actors.
	admin := r.Group("/sos")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.PUT("/:id/status", sosHandler.UpdateStatus)
	}
}
