package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Real-time event types broadcast to monitoring dashboards. Each event has a
// fixed schema so observers cannot grow dependencies on incidental fields.
const (
	EventNewSOSAlert   = "new-sos-alert"
	EventStatusUpdated = "status-updated"
	EventLiveLocation  = "live-location"
)

// NewSOSAlertEvent is published once per trigger, always after the alert has
// been persisted.
type NewSOSAlertEvent struct {
	SOSID              primitive.ObjectID  `json:"sos_id"`
	User               UserSummary         `json:"user"`
	Location           SOSLocation         `json:"location"`
	Source             SOSSource           `json:"source"`
	DeviceID           string              `json:"device_id,omitempty"`
	NearestHelpCenters []HelpCenterSummary `json:"nearest_help_centers"`
	Timestamp          time.Time           `json:"timestamp"`
}

// StatusUpdatedEvent is published after a successful status transition.
type StatusUpdatedEvent struct {
	SOSID     primitive.ObjectID `json:"sos_id"`
	Status    SOSStatus          `json:"status"`
	UpdatedBy primitive.ObjectID `json:"updated_by"`
	Timestamp time.Time          `json:"timestamp"`
}

// LiveLocationEvent relays a position report to the monitoring dashboards.
type LiveLocationEvent struct {
	UserID    primitive.ObjectID `json:"user_id"`
	DeviceID  string             `json:"device_id,omitempty"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	Timestamp time.Time          `json:"timestamp"`
}
