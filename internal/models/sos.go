package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SOSStatus string
type SOSPriority string
type SOSSource string
type ContactNotifyStatus string
type CenterResponseStatus string

const (
	SOSStatusActive     SOSStatus = "active"
	SOSStatusResolved   SOSStatus = "resolved"
	SOSStatusFalseAlarm SOSStatus = "false-alarm"

	SOSPriorityLow      SOSPriority = "low"
	SOSPriorityMedium   SOSPriority = "medium"
	SOSPriorityHigh     SOSPriority = "high"
	SOSPriorityCritical SOSPriority = "critical"

	SOSSourceWeb      SOSSource = "web"
	SOSSourceHardware SOSSource = "hardware"
	SOSSourceMobile   SOSSource = "mobile"

	ContactNotifySent      ContactNotifyStatus = "sent"
	ContactNotifyDelivered ContactNotifyStatus = "delivered"
	ContactNotifyFailed    ContactNotifyStatus = "failed"

	CenterResponsePending      CenterResponseStatus = "pending"
	CenterResponseAcknowledged CenterResponseStatus = "acknowledged"
	CenterResponseDispatched   CenterResponseStatus = "dispatched"
	CenterResponseArrived      CenterResponseStatus = "arrived"
)

// IsTerminal reports whether no further status transition is allowed.
func (s SOSStatus) IsTerminal() bool {
	return s == SOSStatusResolved || s == SOSStatusFalseAlarm
}

type SOSLocation struct {
	Latitude  float64 `json:"latitude" bson:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" bson:"longitude" validate:"required"`
	Address   string  `json:"address,omitempty" bson:"address,omitempty"`
}

// NotifiedContact records the intent to notify one emergency contact. The
// snapshot is taken at alert creation and never updated when the contact
// directory changes afterwards.
type NotifiedContact struct {
	ContactID  primitive.ObjectID  `json:"contact_id" bson:"contact_id"`
	NotifiedAt time.Time           `json:"notified_at" bson:"notified_at"`
	Status     ContactNotifyStatus `json:"status" bson:"status" default:"sent"`
}

// NotifiedHelpCenter records one matched help center, ordered ascending by
// distance within the alert.
type NotifiedHelpCenter struct {
	HelpCenterID   primitive.ObjectID   `json:"help_center_id" bson:"help_center_id"`
	DistanceKM     float64              `json:"distance_km" bson:"distance_km"`
	NotifiedAt     time.Time            `json:"notified_at" bson:"notified_at"`
	ResponseStatus CenterResponseStatus `json:"response_status" bson:"response_status" default:"pending"`
}

// SOSAlert is the durable record of one SOS event: who triggered it, from
// where, the fan-out snapshot taken at creation, and the resolution workflow
// state. Alerts are never deleted.
type SOSAlert struct {
	ID                  primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID              primitive.ObjectID   `json:"user_id" bson:"user_id" validate:"required"`
	Location            SOSLocation          `json:"location" bson:"location" validate:"required"`
	Status              SOSStatus            `json:"status" bson:"status" default:"active"`
	Priority            SOSPriority          `json:"priority" bson:"priority" default:"critical"`
	Source              SOSSource            `json:"source" bson:"source" default:"web"`
	DeviceID            string               `json:"device_id,omitempty" bson:"device_id,omitempty"`
	NotifiedContacts    []NotifiedContact    `json:"notified_contacts" bson:"notified_contacts"`
	NotifiedHelpCenters []NotifiedHelpCenter `json:"notified_help_centers" bson:"notified_help_centers"`
	ResolvedAt          *time.Time           `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
	ResolvedBy          *primitive.ObjectID  `json:"resolved_by,omitempty" bson:"resolved_by,omitempty"`
	Notes               string               `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt           time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at" bson:"updated_at"`
}

// SOSReceipt is returned to the triggering party so it can tell, immediately
// and unambiguously, whether the alert was recorded and who was notified.
type SOSReceipt struct {
	SOSID               primitive.ObjectID  `json:"sos_id"`
	ContactsNotified    int                 `json:"contacts_notified"`
	HelpCentersNotified int                 `json:"help_centers_notified"`
	NearestHelpCenters  []HelpCenterSummary `json:"nearest_help_centers"`
	CreatedAt           time.Time           `json:"created_at"`
}
