package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HelpCenterType string

const (
	HelpCenterTypePolice      HelpCenterType = "police"
	HelpCenterTypeHospital    HelpCenterType = "hospital"
	HelpCenterTypeNGO         HelpCenterType = "ngo"
	HelpCenterTypeFireStation HelpCenterType = "fire-station"
)

type HelpCenterLocation struct {
	Latitude  float64 `json:"latitude" bson:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" bson:"longitude" validate:"required"`
	Address   string  `json:"address" bson:"address" validate:"required"`
	City      string  `json:"city,omitempty" bson:"city,omitempty"`
	State     string  `json:"state,omitempty" bson:"state,omitempty"`
	Pincode   string  `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

type HelpCenterContact struct {
	Phone           string `json:"phone" bson:"phone" validate:"required"`
	Email           string `json:"email,omitempty" bson:"email,omitempty"`
	EmergencyNumber string `json:"emergency_number,omitempty" bson:"emergency_number,omitempty"`
}

// HelpCenter is an emergency-response facility. The dispatch engine treats the
// directory as read-only; only centers with IsActive set participate in
// nearest-facility matching.
type HelpCenter struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" validate:"required"`
	Type         HelpCenterType     `json:"type" bson:"type" validate:"required"`
	Location     HelpCenterLocation `json:"location" bson:"location" validate:"required"`
	Contact      HelpCenterContact  `json:"contact" bson:"contact" validate:"required"`
	IsOpen24x7   bool               `json:"is_open_24x7" bson:"is_open_24x7" default:"true"`
	ResponseTime int                `json:"response_time" bson:"response_time" default:"10"` // minutes
	IsActive     bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// HelpCenterSummary is what the trigger receipt and real-time events carry for
// each matched center.
type HelpCenterSummary struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Type       HelpCenterType     `json:"type"`
	DistanceKM float64            `json:"distance_km"`
	Phone      string             `json:"phone"`
}
