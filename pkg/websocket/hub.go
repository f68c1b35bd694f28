package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Envelope is the wire frame for every real-time event. Data carries one of
// the typed event payloads; observers switch on Type.
type Envelope struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Hub tracks connected dashboard and client sockets. Delivery is
// fire-and-forget: there is no persistence or replay, and a subscriber that
// connects after an event was published never receives it.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	log.Printf("WebSocket client registered: %s", client.UserID.Hex())

	// Every connection joins its personal room for user-scoped delivery.
	personalRoom := "user-" + client.UserID.Hex()
	h.joinRoom(client, personalRoom)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		for roomID, room := range h.rooms {
			if _, exists := room[client]; exists {
				delete(room, client)
				if len(room) == 0 {
					delete(h.rooms, roomID)
				}
			}
		}

		log.Printf("WebSocket client unregistered: %s", client.UserID.Hex())
	}
}

// Broadcast delivers an event to every connected client. A client whose send
// buffer is full just misses this event.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	data, err := json.Marshal(Envelope{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      payload,
	})
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
		}
	}
}

// SendToRoom delivers an event only to clients joined to the given room.
func (h *Hub) SendToRoom(roomID, eventType string, payload interface{}) {
	data, err := json.Marshal(Envelope{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      payload,
	})
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	room, exists := h.rooms[roomID]
	if !exists {
		return
	}

	for client := range room {
		select {
		case client.send <- data:
		default:
		}
	}
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
}

func (h *Hub) JoinRoom(client *Client, roomID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.joinRoom(client, roomID)
}

func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if room, exists := h.rooms[roomID]; exists {
		delete(room, client)
		delete(client.rooms, roomID)

		if len(room) == 0 {
			delete(h.rooms, roomID)
		}
	}
}
