package services

import "go.mongodb.org/mongo-driver/bson/primitive"

// AlertPublisher is the real-time channel the dispatch engine publishes
// lifecycle events on. Delivery is fire-and-forget; the engine never waits on
// or retries a publish. Injected so tests can observe events with a fake.
type AlertPublisher interface {
	// Broadcast delivers an event to every connected observer.
	Broadcast(eventType string, payload interface{})

	// SendToUser delivers an event only to observers in the user's personal
	// room, such as watchers following one subject's position.
	SendToUser(userID primitive.ObjectID, eventType string, payload interface{})
}
