package routes

import (
	"safeguard/internal/middleware"
	"safeguard/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// SetupWebSocketRoutes wires the realtime upgrade endpoint. Connections are
// authenticated so the hub can place each client in its personal room.
func SetupWebSocketRoutes(r *gin.Engine, wsHandler *websocket.Handler, path, jwtSecret string) {
	r.GET(path, middleware.AuthRequired(jwtSecret), wsHandler.HandleWebSocket)
}
