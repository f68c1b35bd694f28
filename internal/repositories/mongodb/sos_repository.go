package mongodb

import (
	"context"
	"fmt"
	"time"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"
	"safeguard/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type sosRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewSOSRepository(db *mongo.Database, cache CacheService) interfaces.SOSRepository {
	return &sosRepository{
		collection: db.Collection("sos_alerts"),
		cache:      cache,
	}
}

func (r *sosRepository) Create(ctx context.Context, alert *models.SOSAlert) error {
	if alert.ID.IsZero() {
		alert.ID = primitive.NewObjectID()
	}
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = alert.CreatedAt

	// Single insert of the fully-built record; the fan-out snapshot is never
	// written incrementally.
	_, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return fmt.Errorf("failed to create sos alert: %w", err)
	}

	if alert.Status == models.SOSStatusActive {
		r.cacheAlert(ctx, alert)
	}

	return nil
}

func (r *sosRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SOSAlert, error) {
	if alert := r.getAlertFromCache(ctx, id.Hex()); alert != nil {
		return alert, nil
	}

	var alert models.SOSAlert
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sos alert: %w", err)
	}

	if alert.Status == models.SOSStatusActive {
		r.cacheAlert(ctx, &alert)
	}

	return &alert, nil
}

func (r *sosRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	return r.findAlertsWithFilter(ctx, bson.M{"user_id": userID}, params)
}

func (r *sosRepository) List(ctx context.Context, filter interfaces.SOSFilter, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}

	return r.findAlertsWithFilter(ctx, query, params)
}

func (r *sosRepository) GetRecent(ctx context.Context, limit int) ([]*models.SOSAlert, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent sos alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []*models.SOSAlert
	for cursor.Next(ctx) {
		var alert models.SOSAlert
		if err := cursor.Decode(&alert); err != nil {
			return nil, fmt.Errorf("failed to decode sos alert: %w", err)
		}
		alerts = append(alerts, &alert)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sos alerts: %w", err)
	}

	return alerts, nil
}

func (r *sosRepository) CountByStatus(ctx context.Context, status models.SOSStatus) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count sos alerts: %w", err)
	}
	return count, nil
}

func (r *sosRepository) Transition(ctx context.Context, id primitive.ObjectID, change interfaces.SOSTransition) (*models.SOSAlert, error) {
	now := time.Now()
	updates := bson.M{
		"status":     change.Status,
		"updated_at": now,
	}
	if change.Status == models.SOSStatusResolved {
		updates["resolved_at"] = now
		updates["resolved_by"] = change.ActorID
		updates["notes"] = change.Notes
	}

	// Compare-and-set: the filter only matches while the alert is still
	// active, so concurrent transitions cannot both win and a terminal record
	// is never rewritten.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.SOSAlert
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": models.SOSStatusActive},
		bson.M{"$set": updates},
		opts,
	).Decode(&updated)

	if err == mongo.ErrNoDocuments {
		// Distinguish a missing alert from one already closed.
		var existing models.SOSAlert
		lookupErr := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if lookupErr == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		if lookupErr != nil {
			return nil, fmt.Errorf("failed to get sos alert: %w", lookupErr)
		}
		return nil, interfaces.ErrAlertClosed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition sos alert: %w", err)
	}

	r.invalidateAlertCache(ctx, id.Hex())

	return &updated, nil
}

func (r *sosRepository) findAlertsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sos alerts: %w", err)
	}

	opts := params.GetSortOptions()
	if params.Sort == "created_at" || params.Sort == "" {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find sos alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []*models.SOSAlert
	for cursor.Next(ctx) {
		var alert models.SOSAlert
		if err := cursor.Decode(&alert); err != nil {
			return nil, 0, fmt.Errorf("failed to decode sos alert: %w", err)
		}
		alerts = append(alerts, &alert)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate sos alerts: %w", err)
	}

	return alerts, total, nil
}

// Cache operations
func (r *sosRepository) cacheAlert(ctx context.Context, alert *models.SOSAlert) {
	if r.cache != nil && alert.Status == models.SOSStatusActive {
		cacheKey := fmt.Sprintf("sos:%s", alert.ID.Hex())
		r.cache.Set(ctx, cacheKey, alert, utils.ActiveAlertCacheTTL)
	}
}

func (r *sosRepository) getAlertFromCache(ctx context.Context, alertID string) *models.SOSAlert {
	if r.cache == nil {
		return nil
	}

	cacheKey := fmt.Sprintf("sos:%s", alertID)
	var alert models.SOSAlert
	if err := r.cache.Get(ctx, cacheKey, &alert); err != nil {
		return nil
	}

	return &alert
}

func (r *sosRepository) invalidateAlertCache(ctx context.Context, alertID string) {
	if r.cache != nil {
		cacheKey := fmt.Sprintf("sos:%s", alertID)
		r.cache.Delete(ctx, cacheKey)
	}
}
