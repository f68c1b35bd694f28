package interfaces

import (
	"context"

	"safeguard/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactRepository is a read-only view of a user's emergency contacts.
type ContactRepository interface {
	// GetActiveByUserID returns the user's active contacts ordered by
	// ascending priority number (1 = highest).
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.EmergencyContact, error)
}
