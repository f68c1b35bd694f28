package routes

import (
	handlers "safeguard/internal/handlers/shared"
	"safeguard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes wires the monitoring dashboard endpoints.
func SetupAdminRoutes(r *gin.RouterGroup, adminHandler *handlers.AdminHandler, sosHandler *handlers.SOSHandler, jwtSecret string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/dashboard", adminHandler.GetDashboardStats)
		admin.GET("/alerts", sosHandler.ListAlerts)
	}
}
