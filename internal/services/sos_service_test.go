package services

import (
	"context"
	"sync"
	"testing"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sosTestEnv struct {
	service   SOSService
	sosRepo   *fakeSOSRepo
	publisher *recordingPublisher
	user      *models.User
	contacts  []*models.EmergencyContact
	matches   []HelpCenterMatch
}

func newSOSTestEnv(t *testing.T) *sosTestEnv {
	t.Helper()

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Asha Verma",
		Email: "asha@example.com",
		Phone: "+919800000001",
		Role:  models.UserRoleUser,
	}

	contacts := []*models.EmergencyContact{
		{ID: primitive.NewObjectID(), UserID: user.ID, Name: "Ravi Verma", Phone: "+919800000002", Priority: 1, IsActive: true},
		{ID: primitive.NewObjectID(), UserID: user.ID, Name: "Meera Singh", Phone: "+919800000003", Priority: 2, IsActive: true},
	}

	matches := []HelpCenterMatch{
		{Center: newCenter("City General Hospital", models.HelpCenterTypeHospital, 51.505, -0.09), DistanceKM: 0},
		{Center: newCenter("Central Police Station", models.HelpCenterTypePolice, 51.51, -0.10), DistanceKM: 0.89},
	}

	sosRepo := newFakeSOSRepo()
	publisher := &recordingPublisher{}

	service := NewSOSService(
		sosRepo,
		newFakeUserRepo(user),
		&fakeContactRepo{contacts: contacts},
		&fakeMatcher{matches: matches},
		publisher,
		newTestLogger(t),
	)

	return &sosTestEnv{
		service:   service,
		sosRepo:   sosRepo,
		publisher: publisher,
		user:      user,
		contacts:  contacts,
		matches:   matches,
	}
}

func TestTriggerSOSSnapshotsFanOut(t *testing.T) {
	env := newSOSTestEnv(t)

	receipt, err := env.service.TriggerSOS(context.Background(), TriggerParams{
		UserID:    env.user.ID,
		Latitude:  51.505,
		Longitude: -0.09,
		Address:   "Central Plaza",
		Source:    models.SOSSourceWeb,
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.False(t, receipt.SOSID.IsZero())
	assert.Equal(t, 2, receipt.ContactsNotified)
	assert.Equal(t, 2, receipt.HelpCentersNotified)
	require.Len(t, receipt.NearestHelpCenters, 2)
	assert.Equal(t, "City General Hospital", receipt.NearestHelpCenters[0].Name)

	alert, err := env.service.GetByID(context.Background(), receipt.SOSID)
	require.NoError(t, err)
	assert.Equal(t, models.SOSStatusActive, alert.Status)
	assert.Equal(t, models.SOSPriorityCritical, alert.Priority)
	assert.Equal(t, models.SOSSourceWeb, alert.Source)
	require.Len(t, alert.NotifiedContacts, 2)
	assert.Equal(t, env.contacts[0].ID, alert.NotifiedContacts[0].ContactID)
	assert.Equal(t, models.ContactNotifySent, alert.NotifiedContacts[0].Status)
	require.Len(t, alert.NotifiedHelpCenters, 2)
	assert.Equal(t, models.CenterResponsePending, alert.NotifiedHelpCenters[0].ResponseStatus)
	assert.Equal(t, 0.0, alert.NotifiedHelpCenters[0].DistanceKM)
}

func TestTriggerSOSPublishesAfterPersist(t *testing.T) {
	env := newSOSTestEnv(t)

	receipt, err := env.service.TriggerSOS(context.Background(), TriggerParams{
		UserID:    env.user.ID,
		Latitude:  51.505,
		Longitude: -0.09,
		Source:    models.SOSSourceMobile,
	})
	require.NoError(t, err)

	events := env.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventNewSOSAlert, events[0].Type)

	payload, ok := events[0].Payload.(*models.NewSOSAlertEvent)
	require.True(t, ok)
	assert.Equal(t, receipt.SOSID, payload.SOSID)
	assert.Equal(t, env.user.Name, payload.User.Name)
	assert.Equal(t, env.user.Phone, payload.User.Phone)
	assert.Len(t, payload.NearestHelpCenters, 2)
}

func TestTriggerSOSInvalidCoordinates(t *testing.T) {
	env := newSOSTestEnv(t)

	receipt, err := env.service.TriggerSOS(context.Background(), TriggerParams{
		UserID:    env.user.ID,
		Latitude:  95.0,
		Longitude: -0.09,
		Source:    models.SOSSourceWeb,
	})
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
	assert.Nil(t, receipt)
	assert.Zero(t, env.sosRepo.count())
	assert.Empty(t, env.publisher.published())
}

func TestTriggerSOSUnknownUser(t *testing.T) {
	env := newSOSTestEnv(t)

	receipt, err := env.service.TriggerSOS(context.Background(), TriggerParams{
		UserID:    primitive.NewObjectID(),
		Latitude:  51.505,
		Longitude: -0.09,
		Source:    models.SOSSourceWeb,
	})
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	assert.Nil(t, receipt)
	assert.Zero(t, env.sosRepo.count())
	assert.Empty(t, env.publisher.published())
}

func TestTriggerSOSNoCentersNearby(t *testing.T) {
	env := newSOSTestEnv(t)
	env.service = NewSOSService(
		env.sosRepo,
		newFakeUserRepo(env.user),
		&fakeContactRepo{contacts: env.contacts},
		&fakeMatcher{},
		env.publisher,
		newTestLogger(t),
	)

	receipt, err := env.service.TriggerSOS(context.Background(), TriggerParams{
		UserID:    env.user.ID,
		Latitude:  51.505,
		Longitude: -0.09,
		Source:    models.SOSSourceWeb,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, receipt.HelpCentersNotified)
	assert.Empty(t, receipt.NearestHelpCenters)
	assert.Equal(t, 2, receipt.ContactsNotified)
	assert.Equal(t, 1, env.sosRepo.count())
}

func TestTriggerSOSMatcherFailure(t *testing.T) {
	env := newSOSTestEnv(t)
	env.service = NewSOSService(
		env.sosRepo,
		newFakeUserRepo(env.user),
		&fakeContactRepo{contacts: env.contacts},
		&fakeMatcher{err: assert.AnError},
		env.publisher,
		newTestLogger(t),
	)

	receipt, err := env.service.TriggerSOS(context.Background(), TriggerParams{
		UserID:    env.user.ID,
		Latitude:  51.505,
		Longitude: -0.09,
		Source:    models.SOSSourceWeb,
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, receipt)
	assert.Zero(t, env.sosRepo.count())
	assert.Empty(t, env.publisher.published())
}

func TestTriggerSOSPersistFailureSuppressesPublish(t *testing.T) {
	env := newSOSTestEnv(t)
	env.sosRepo.createErr = assert.AnError

	receipt, err := env.service.TriggerSOS(context.Background(), TriggerParams{
		UserID:    env.user.ID,
		Latitude:  51.505,
		Longitude: -0.09,
		Source:    models.SOSSourceWeb,
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, receipt)
	assert.Empty(t, env.publisher.published())
}

func TestTriggerSOSConcurrentTriggersCreateDistinctAlerts(t *testing.T) {
	env := newSOSTestEnv(t)

	var wg sync.WaitGroup
	receipts := make([]*models.SOSReceipt, 2)
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			receipts[i], errs[i] = env.service.TriggerSOS(context.Background(), TriggerParams{
				UserID:    env.user.ID,
				Latitude:  51.505,
				Longitude: -0.09,
				Source:    models.SOSSourceWeb,
			})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.NotEqual(t, receipts[0].SOSID, receipts[1].SOSID)
	assert.Equal(t, 2, env.sosRepo.count())
	assert.Len(t, env.publisher.published(), 2)
}

func TestUpdateStatusResolvesActiveAlert(t *testing.T) {
	env := newSOSTestEnv(t)
	admin := primitive.NewObjectID()

	receipt, err := env.service.TriggerSOS(context.Background(), TriggerParams{
		UserID:    env.user.ID,
		Latitude:  51.505,
		Longitude: -0.09,
		Source:    models.SOSSourceWeb,
	})
	require.NoError(t, err)

	updated, err := env.service.UpdateStatus(context.Background(), receipt.SOSID, models.SOSStatusResolved, admin, "responder on scene")
	require.NoError(t, err)
	assert.Equal(t, models.SOSStatusResolved, updated.Status)
	assert.Equal(t, "responder on scene", updated.Notes)
	require.NotNil(t, updated.ResolvedAt)
	require.NotNil(t, updated.ResolvedBy)
	assert.Equal(t, admin, *updated.ResolvedBy)

	events := env.publisher.published()
	require.Len(t, events, 2)
	assert.Equal(t, models.EventStatusUpdated, events[1].Type)

	payload, ok := events[1].Payload.(*models.StatusUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, receipt.SOSID, payload.SOSID)
	assert.Equal(t, models.SOSStatusResolved, payload.Status)
	assert.Equal(t, admin, payload.UpdatedBy)
}

func TestUpdateStatusFalseAlarmSkipsResolutionMetadata(t *testing.T) {
	env := newSOSTestEnv(t)

	receipt, err := env.service.TriggerSOS(context.Background(), TriggerParams{
		UserID:    env.user.ID,
		Latitude:  51.505,
		Longitude: -0.09,
		Source:    models.SOSSourceWeb,
	})
	require.NoError(t, err)

	updated, err := env.service.UpdateStatus(context.Background(), receipt.SOSID, models.SOSStatusFalseAlarm, primitive.NewObjectID(), "")
	require.NoError(t, err)
	assert.Equal(t, models.SOSStatusFalseAlarm, updated.Status)

	// Only a resolve carries resolution metadata.
	assert.Nil(t, updated.ResolvedAt)
	assert.Nil(t, updated.ResolvedBy)
}

func TestUpdateStatusRejectsNonTerminalTarget(t *testing.T) {
	env := newSOSTestEnv(t)

	updated, err := env.service.UpdateStatus(context.Background(), primitive.NewObjectID(), models.SOSStatusActive, primitive.NewObjectID(), "")
	assert.ErrorIs(t, err, ErrInvalidTargetStatus)
	assert.Nil(t, updated)
	assert.Empty(t, env.publisher.published())
}

func TestUpdateStatusUnknownAlert(t *testing.T) {
	env := newSOSTestEnv(t)

	updated, err := env.service.UpdateStatus(context.Background(), primitive.NewObjectID(), models.SOSStatusResolved, primitive.NewObjectID(), "")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	assert.Nil(t, updated)
}

func TestUpdateStatusAlreadyClosed(t *testing.T) {
	env := newSOSTestEnv(t)
	admin := primitive.NewObjectID()

	receipt, err := env.service.TriggerSOS(context.Background(), TriggerParams{
		UserID:    env.user.ID,
		Latitude:  51.505,
		Longitude: -0.09,
		Source:    models.SOSSourceWeb,
	})
	require.NoError(t, err)

	_, err = env.service.UpdateStatus(context.Background(), receipt.SOSID, models.SOSStatusResolved, admin, "")
	require.NoError(t, err)

	eventsBefore := len(env.publisher.published())

	updated, err := env.service.UpdateStatus(context.Background(), receipt.SOSID, models.SOSStatusFalseAlarm, admin, "")
	assert.ErrorIs(t, err, interfaces.ErrAlertClosed)
	assert.Nil(t, updated)
	assert.Len(t, env.publisher.published(), eventsBefore)

	// The record keeps its first terminal state.
	alert, err := env.service.GetByID(context.Background(), receipt.SOSID)
	require.NoError(t, err)
	assert.Equal(t, models.SOSStatusResolved, alert.Status)
}
