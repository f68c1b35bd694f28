package interfaces

import (
	"context"

	"safeguard/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// GetByDeviceID resolves a registered hardware device to its owner.
	// ErrNotFound if the device is not bound to any user.
	GetByDeviceID(ctx context.Context, deviceID string) (*models.User, error)

	SetDeviceID(ctx context.Context, userID primitive.ObjectID, deviceID string) (*models.User, error)
	UpdateLastLocation(ctx context.Context, userID primitive.ObjectID, location *models.LastLocation) error
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}
