package mongodb

import (
	"context"
	"fmt"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"
	"safeguard/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type helpCenterRepository struct {
	collection *mongo.Collection
}

func NewHelpCenterRepository(db *mongo.Database) interfaces.HelpCenterRepository {
	return &helpCenterRepository{
		collection: db.Collection("help_centers"),
	}
}

func (r *helpCenterRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.HelpCenter, error) {
	var center models.HelpCenter
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&center)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get help center: %w", err)
	}

	return &center, nil
}

func (r *helpCenterRepository) GetActiveCenters(ctx context.Context) ([]*models.HelpCenter, error) {
	return r.findCenters(ctx, bson.M{"is_active": true})
}

func (r *helpCenterRepository) GetActiveByType(ctx context.Context, centerType models.HelpCenterType) ([]*models.HelpCenter, error) {
	return r.findCenters(ctx, bson.M{"is_active": true, "type": centerType})
}

func (r *helpCenterRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.HelpCenter, int64, error) {
	filter := bson.M{"is_active": true}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count help centers: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find help centers: %w", err)
	}
	defer cursor.Close(ctx)

	var centers []*models.HelpCenter
	for cursor.Next(ctx) {
		var center models.HelpCenter
		if err := cursor.Decode(&center); err != nil {
			return nil, 0, fmt.Errorf("failed to decode help center: %w", err)
		}
		centers = append(centers, &center)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate help centers: %w", err)
	}

	return centers, total, nil
}

func (r *helpCenterRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count help centers: %w", err)
	}
	return count, nil
}

func (r *helpCenterRepository) findCenters(ctx context.Context, filter bson.M) ([]*models.HelpCenter, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find help centers: %w", err)
	}
	defer cursor.Close(ctx)

	var centers []*models.HelpCenter
	for cursor.Next(ctx) {
		var center models.HelpCenter
		if err := cursor.Decode(&center); err != nil {
			return nil, fmt.Errorf("failed to decode help center: %w", err)
		}
		centers = append(centers, &center)
	}
	// A truncated directory scan would silently shrink the match candidates.
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate help centers: %w", err)
	}

	return centers, nil
}
