package interfaces

import (
	"context"

	"safeguard/internal/models"
	"safeguard/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HelpCenterRepository is a read-only view of the help-center directory; the
// dispatch engine never writes to it.
type HelpCenterRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.HelpCenter, error)
	GetActiveCenters(ctx context.Context) ([]*models.HelpCenter, error)
	GetActiveByType(ctx context.Context, centerType models.HelpCenterType) ([]*models.HelpCenter, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.HelpCenter, int64, error)
	CountActive(ctx context.Context) (int64, error)
}
