package services

import (
	"context"
	"testing"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newHardwareTestEnv(t *testing.T) (HardwareService, *fakeSOSRepo, *recordingPublisher, *models.User) {
	t.Helper()

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Priya Nair",
		Email:    "priya@example.com",
		Phone:    "+919800000010",
		Role:     models.UserRoleUser,
		DeviceID: "SG-BTN-0042",
	}

	sosRepo := newFakeSOSRepo()
	userRepo := newFakeUserRepo(user)
	publisher := &recordingPublisher{}

	sosService := NewSOSService(
		sosRepo,
		userRepo,
		&fakeContactRepo{},
		&fakeMatcher{},
		publisher,
		newTestLogger(t),
	)

	hardware := NewHardwareService(userRepo, sosService, publisher, newTestLogger(t))
	return hardware, sosRepo, publisher, user
}

func TestTriggerByDeviceDispatchesAsHardwareSource(t *testing.T) {
	hardware, sosRepo, _, user := newHardwareTestEnv(t)

	receipt, err := hardware.TriggerByDevice(context.Background(), user.DeviceID, 51.505, -0.09)
	require.NoError(t, err)
	require.NotNil(t, receipt)

	alert, err := sosRepo.GetByID(context.Background(), receipt.SOSID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, alert.UserID)
	assert.Equal(t, models.SOSSourceHardware, alert.Source)
	assert.Equal(t, user.DeviceID, alert.DeviceID)
}

func TestTriggerByDeviceUnknownDevice(t *testing.T) {
	hardware, sosRepo, publisher, _ := newHardwareTestEnv(t)

	receipt, err := hardware.TriggerByDevice(context.Background(), "SG-BTN-9999", 51.505, -0.09)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	assert.Nil(t, receipt)
	assert.Zero(t, sosRepo.count())
	assert.Empty(t, publisher.published())
}

func TestRegisterDevice(t *testing.T) {
	hardware, _, _, user := newHardwareTestEnv(t)

	updated, err := hardware.RegisterDevice(context.Background(), user.ID, "SG-BTN-0100")
	require.NoError(t, err)
	assert.Equal(t, "SG-BTN-0100", updated.DeviceID)
}

func TestRegisterDeviceUnknownUser(t *testing.T) {
	hardware, _, _, _ := newHardwareTestEnv(t)

	updated, err := hardware.RegisterDevice(context.Background(), primitive.NewObjectID(), "SG-BTN-0100")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	assert.Nil(t, updated)
}

func TestHeartbeatUpdatesLocationAndNotifiesWatchers(t *testing.T) {
	hardware, _, publisher, user := newHardwareTestEnv(t)

	lat, lng := 51.51, -0.10
	updated, err := hardware.Heartbeat(context.Background(), user.DeviceID, &lat, &lng)
	require.NoError(t, err)
	require.NotNil(t, updated.LastLocation)
	assert.Equal(t, lat, updated.LastLocation.Latitude)
	assert.Equal(t, lng, updated.LastLocation.Longitude)

	// Position reports go to the owner's personal room, not platform-wide.
	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventLiveLocation, events[0].Type)
	assert.Equal(t, user.ID, events[0].User)

	payload, ok := events[0].Payload.(*models.LiveLocationEvent)
	require.True(t, ok)
	assert.Equal(t, user.ID, payload.UserID)
	assert.Equal(t, user.DeviceID, payload.DeviceID)
	assert.Equal(t, lat, payload.Latitude)
}

func TestHeartbeatWithoutPosition(t *testing.T) {
	hardware, _, publisher, user := newHardwareTestEnv(t)

	updated, err := hardware.Heartbeat(context.Background(), user.DeviceID, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.LastLocation)
	assert.Empty(t, publisher.published())
}
