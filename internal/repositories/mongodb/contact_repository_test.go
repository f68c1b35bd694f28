package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGetActiveByUserID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes returned contacts", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		contactID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "safeguard.emergency_contacts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: contactID},
			{Key: "user_id", Value: userID},
			{Key: "name", Value: "Ravi Verma"},
			{Key: "phone", Value: "+919800000002"},
			{Key: "priority", Value: 1},
			{Key: "is_active", Value: true},
		}))

		repo := NewContactRepository(mt.DB)
		contacts, err := repo.GetActiveByUserID(context.Background(), userID)
		require.NoError(mt, err)
		require.Len(mt, contacts, 1)
		assert.Equal(mt, contactID, contacts[0].ID)
		assert.Equal(mt, "Ravi Verma", contacts[0].Name)
	})

	mt.Run("mid-iteration cursor failure is an error, not a short list", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		firstBatch := mtest.CreateCursorResponse(7, "safeguard.emergency_contacts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user_id", Value: userID},
			{Key: "name", Value: "Ravi Verma"},
			{Key: "phone", Value: "+919800000002"},
		})
		getMoreFailure := mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    43,
			Name:    "CursorNotFound",
			Message: "cursor killed",
		})
		mt.AddMockResponses(firstBatch, getMoreFailure)

		repo := NewContactRepository(mt.DB)
		contacts, err := repo.GetActiveByUserID(context.Background(), userID)
		require.Error(mt, err)
		assert.Nil(mt, contacts)
	})
}
