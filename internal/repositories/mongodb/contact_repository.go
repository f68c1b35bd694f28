package mongodb

import (
	"context"
	"fmt"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type contactRepository struct {
	collection *mongo.Collection
}

func NewContactRepository(db *mongo.Database) interfaces.ContactRepository {
	return &contactRepository{
		collection: db.Collection("emergency_contacts"),
	}
}

func (r *contactRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.EmergencyContact, error) {
	filter := bson.M{
		"user_id":   userID,
		"is_active": true,
	}

	// Priority 1 is highest; notify order follows ascending priority.
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "priority", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find emergency contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var contacts []*models.EmergencyContact
	for cursor.Next(ctx) {
		var contact models.EmergencyContact
		if err := cursor.Decode(&contact); err != nil {
			return nil, fmt.Errorf("failed to decode emergency contact: %w", err)
		}
		contacts = append(contacts, &contact)
	}
	// A cursor failure mid-iteration must not pass off a truncated contact
	// list as the full snapshot.
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate emergency contacts: %w", err)
	}

	return contacts, nil
}
