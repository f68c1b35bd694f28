package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactRelationship string

const (
	RelationshipFamily    ContactRelationship = "family"
	RelationshipFriend    ContactRelationship = "friend"
	RelationshipColleague ContactRelationship = "colleague"
	RelationshipOther     ContactRelationship = "other"
)

// EmergencyContact is a pre-registered person to notify when the owning user
// triggers an SOS. Priority 1 is highest, 5 lowest; only active contacts are
// snapshotted into an alert.
type EmergencyContact struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	Name         string              `json:"name" bson:"name" validate:"required"`
	Phone        string              `json:"phone" bson:"phone" validate:"required"`
	Email        string              `json:"email,omitempty" bson:"email,omitempty"`
	Relationship ContactRelationship `json:"relationship" bson:"relationship" default:"other"`
	Priority     int                 `json:"priority" bson:"priority" validate:"min=1,max=5"`
	IsActive     bool                `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`
}
