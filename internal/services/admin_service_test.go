package services

import (
	"context"
	"testing"

	"safeguard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetDashboardStats(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.UserRoleUser}
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.UserRoleAdmin}

	sosRepo := newFakeSOSRepo()
	require.NoError(t, sosRepo.Create(context.Background(), &models.SOSAlert{
		UserID: user.ID,
		Status: models.SOSStatusActive,
	}))
	require.NoError(t, sosRepo.Create(context.Background(), &models.SOSAlert{
		UserID: user.ID,
		Status: models.SOSStatusResolved,
	}))

	centerRepo := &fakeHelpCenterRepo{centers: []*models.HelpCenter{
		newCenter("City General Hospital", models.HelpCenterTypeHospital, 51.505, -0.09),
	}}

	service := NewAdminService(sosRepo, newFakeUserRepo(user, admin), centerRepo)

	stats, err := service.GetDashboardStats(context.Background())
	require.NoError(t, err)

	// Admins are not counted as platform users.
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.ActiveAlerts)
	assert.Equal(t, int64(1), stats.ResolvedAlerts)
	assert.Equal(t, int64(1), stats.HelpCenters)
	assert.Len(t, stats.RecentAlerts, 2)
}
