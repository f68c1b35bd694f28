package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler owns the hub and exposes it both as a gin upgrade endpoint and as
// the alert publisher injected into the dispatch services.
type Handler struct {
	hub      *Hub
	cfg      *Config
	upgrader websocket.Upgrader
}

func NewHandler(cfg *Config) *Handler {
	cfg = cfg.withDefaults()
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub: hub,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.checkOrigin,
		},
	}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	role, _ := c.Get("user_role")
	roleStr, _ := role.(string)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userObjectID, roleStr, h.cfg)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// Broadcast publishes a typed event to every connected observer.
func (h *Handler) Broadcast(eventType string, payload interface{}) {
	h.hub.Broadcast(eventType, payload)
}

// SendToUser publishes a typed event only to the user's personal room.
func (h *Handler) SendToUser(userID primitive.ObjectID, eventType string, payload interface{}) {
	h.hub.SendToRoom("user-"+userID.Hex(), eventType, payload)
}
