package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// LastLocation is the most recent position reported for a user, updated by
// device heartbeats and live-location messages. Informational only; the
// coordinate carried by an SOS trigger is always used as-is.
type LastLocation struct {
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email        string             `json:"email" bson:"email" validate:"required,email"`
	Phone        string             `json:"phone" bson:"phone" validate:"required"`
	Password     string             `json:"-" bson:"password"`
	Role         UserRole           `json:"role" bson:"role" default:"user"`
	Status       UserStatus         `json:"status" bson:"status" default:"active"`
	DeviceID     string             `json:"device_id,omitempty" bson:"device_id,omitempty"`
	LastLocation *LastLocation      `json:"last_location,omitempty" bson:"last_location,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// UserSummary is the subject payload embedded in alert events and receipts.
type UserSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Phone string             `json:"phone"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Phone: u.Phone}
}
