package interfaces

import (
	"context"

	"safeguard/internal/models"
	"safeguard/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SOSFilter narrows admin listings. Zero values mean "no filter".
type SOSFilter struct {
	Status   models.SOSStatus
	Priority models.SOSPriority
}

// SOSTransition describes one status change applied atomically to an alert
// that is still active.
type SOSTransition struct {
	Status  models.SOSStatus
	ActorID primitive.ObjectID
	Notes   string
}

type SOSRepository interface {
	// Create inserts the complete alert record in a single write. Callers
	// build the full fan-out snapshot first so a partially-notified record is
	// never visible.
	Create(ctx context.Context, alert *models.SOSAlert) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.SOSAlert, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error)
	List(ctx context.Context, filter SOSFilter, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error)
	GetRecent(ctx context.Context, limit int) ([]*models.SOSAlert, error)
	CountByStatus(ctx context.Context, status models.SOSStatus) (int64, error)

	// Transition applies the status change as a single compare-and-set on an
	// active alert and returns the updated record. ErrNotFound if the alert
	// does not exist, ErrAlertClosed if it is already terminal.
	Transition(ctx context.Context, id primitive.ObjectID, change SOSTransition) (*models.SOSAlert, error)
}
