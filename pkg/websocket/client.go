package websocket

import (
	"encoding/json"
	"log"
	"time"

	"safeguard/internal/models"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1024
)

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	UserID     primitive.ObjectID
	Role       string
	rooms      map[string]bool
	pongWait   time.Duration
	pingPeriod time.Duration
}

// inboundMessage is what connected clients may send upward: room management
// and live position reports.
type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func NewClient(hub *Hub, conn *websocket.Conn, userID primitive.ObjectID, role string, cfg *Config) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 256),
		UserID:     userID,
		Role:       role,
		rooms:      make(map[string]bool),
		pongWait:   cfg.PongTimeout,
		pingPeriod: cfg.PingInterval,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(message []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling client message: %v", err)
		return
	}

	switch msg.Type {
	case "join-room":
		var data struct {
			RoomID string `json:"room_id"`
		}
		if err := json.Unmarshal(msg.Data, &data); err == nil && data.RoomID != "" {
			c.hub.JoinRoom(c, data.RoomID)
		}

	case "leave-room":
		var data struct {
			RoomID string `json:"room_id"`
		}
		if err := json.Unmarshal(msg.Data, &data); err == nil && data.RoomID != "" {
			c.hub.LeaveRoom(c, data.RoomID)
		}

	case "location-update":
		// Relayed into the sender's personal room with a fixed schema; any
		// extra fields a client sends never reach observers.
		var data struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.Latitude == nil || data.Longitude == nil {
			return
		}
		c.hub.SendToRoom("user-"+c.UserID.Hex(), models.EventLiveLocation, &models.LiveLocationEvent{
			UserID:    c.UserID,
			Latitude:  *data.Latitude,
			Longitude: *data.Longitude,
			Timestamp: time.Now(),
		})
	}
}
