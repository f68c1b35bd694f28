package mongodb

import (
	"context"
	"fmt"
	"time"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByDeviceID(ctx context.Context, deviceID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"device_id": deviceID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by device: %w", err)
	}

	return &user, nil
}

func (r *userRepository) SetDeviceID(ctx context.Context, userID primitive.ObjectID, deviceID string) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"device_id": deviceID, "updated_at": time.Now()}},
		opts,
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to set device id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UpdateLastLocation(ctx context.Context, userID primitive.ObjectID, location *models.LastLocation) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"last_location": location, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last location: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *userRepository) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
