package mongodb

import (
	"context"
	"testing"

	"safeguard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGetActiveCenters(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes returned centers", func(mt *mtest.T) {
		centerID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "safeguard.help_centers", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: centerID},
			{Key: "name", Value: "City General Hospital"},
			{Key: "type", Value: "hospital"},
			{Key: "is_active", Value: true},
		}))

		repo := NewHelpCenterRepository(mt.DB)
		centers, err := repo.GetActiveCenters(context.Background())
		require.NoError(mt, err)
		require.Len(mt, centers, 1)
		assert.Equal(mt, centerID, centers[0].ID)
		assert.Equal(mt, models.HelpCenterTypeHospital, centers[0].Type)
	})

	mt.Run("mid-iteration cursor failure is an error, not a short directory", func(mt *mtest.T) {
		firstBatch := mtest.CreateCursorResponse(9, "safeguard.help_centers", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Central Police Station"},
			{Key: "type", Value: "police"},
		})
		getMoreFailure := mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    43,
			Name:    "CursorNotFound",
			Message: "cursor killed",
		})
		mt.AddMockResponses(firstBatch, getMoreFailure)

		repo := NewHelpCenterRepository(mt.DB)
		centers, err := repo.GetActiveCenters(context.Background())
		require.Error(mt, err)
		assert.Nil(mt, centers)
	})
}
