package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"
	"safeguard/internal/utils"
	"safeguard/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.NewLogger(&logger.Config{Level: "error", Format: "text", Output: "stdout"})
	if err != nil {
		t.Fatalf("failed to build test logger: %v", err)
	}
	return log
}

// fakeHelpCenterRepo serves a fixed directory slice.
type fakeHelpCenterRepo struct {
	centers []*models.HelpCenter
	err     error
}

func (f *fakeHelpCenterRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.HelpCenter, error) {
	for _, center := range f.centers {
		if center.ID == id {
			return center, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeHelpCenterRepo) GetActiveCenters(ctx context.Context) ([]*models.HelpCenter, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.centers, nil
}

func (f *fakeHelpCenterRepo) GetActiveByType(ctx context.Context, centerType models.HelpCenterType) ([]*models.HelpCenter, error) {
	if f.err != nil {
		return nil, f.err
	}
	var filtered []*models.HelpCenter
	for _, center := range f.centers {
		if center.Type == centerType {
			filtered = append(filtered, center)
		}
	}
	return filtered, nil
}

func (f *fakeHelpCenterRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.HelpCenter, int64, error) {
	return f.centers, int64(len(f.centers)), f.err
}

func (f *fakeHelpCenterRepo) CountActive(ctx context.Context) (int64, error) {
	return int64(len(f.centers)), f.err
}

// fakeSOSRepo keeps alerts in memory with the same create/transition contract
// as the mongo-backed repository.
type fakeSOSRepo struct {
	mu        sync.Mutex
	alerts    map[primitive.ObjectID]*models.SOSAlert
	createErr error
}

func newFakeSOSRepo() *fakeSOSRepo {
	return &fakeSOSRepo{alerts: make(map[primitive.ObjectID]*models.SOSAlert)}
}

func (f *fakeSOSRepo) Create(ctx context.Context, alert *models.SOSAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	alert.ID = primitive.NewObjectID()
	stored := *alert
	f.alerts[alert.ID] = &stored
	return nil
}

func (f *fakeSOSRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SOSAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	alert, ok := f.alerts[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *alert
	return &copied, nil
}

func (f *fakeSOSRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var alerts []*models.SOSAlert
	for _, alert := range f.alerts {
		if alert.UserID == userID {
			copied := *alert
			alerts = append(alerts, &copied)
		}
	}
	return alerts, int64(len(alerts)), nil
}

func (f *fakeSOSRepo) List(ctx context.Context, filter interfaces.SOSFilter, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var alerts []*models.SOSAlert
	for _, alert := range f.alerts {
		if filter.Status != "" && alert.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && alert.Priority != filter.Priority {
			continue
		}
		copied := *alert
		alerts = append(alerts, &copied)
	}
	return alerts, int64(len(alerts)), nil
}

func (f *fakeSOSRepo) GetRecent(ctx context.Context, limit int) ([]*models.SOSAlert, error) {
	alerts, _, err := f.List(ctx, interfaces.SOSFilter{}, nil)
	if err != nil {
		return nil, err
	}
	if len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts, nil
}

func (f *fakeSOSRepo) CountByStatus(ctx context.Context, status models.SOSStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, alert := range f.alerts {
		if alert.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeSOSRepo) Transition(ctx context.Context, id primitive.ObjectID, change interfaces.SOSTransition) (*models.SOSAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	alert, ok := f.alerts[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	if alert.Status != models.SOSStatusActive {
		return nil, interfaces.ErrAlertClosed
	}

	alert.Status = change.Status
	if change.Status == models.SOSStatusResolved {
		now := time.Now()
		alert.ResolvedAt = &now
		alert.ResolvedBy = &change.ActorID
		alert.Notes = change.Notes
	}

	copied := *alert
	return &copied, nil
}

func (f *fakeSOSRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}

// fakeUserRepo resolves users by ID and by registered device.
type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByDeviceID(ctx context.Context, deviceID string) (*models.User, error) {
	for _, user := range f.users {
		if user.DeviceID == deviceID {
			return user, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeUserRepo) SetDeviceID(ctx context.Context, userID primitive.ObjectID, deviceID string) (*models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	user.DeviceID = deviceID
	return user, nil
}

func (f *fakeUserRepo) UpdateLastLocation(ctx context.Context, userID primitive.ObjectID, location *models.LastLocation) error {
	user, ok := f.users[userID]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.LastLocation = location
	return nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

// fakeContactRepo returns a fixed contact list.
type fakeContactRepo struct {
	contacts []*models.EmergencyContact
	err      error
}

func (f *fakeContactRepo) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.EmergencyContact, error) {
	if f.err != nil {
		return nil, f.err
	}
	var owned []*models.EmergencyContact
	for _, contact := range f.contacts {
		if contact.UserID == userID {
			owned = append(owned, contact)
		}
	}
	return owned, nil
}

// fakeMatcher returns canned matches.
type fakeMatcher struct {
	matches []HelpCenterMatch
	err     error
}

func (f *fakeMatcher) FindNearest(ctx context.Context, latitude, longitude float64) ([]HelpCenterMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

// recordingPublisher captures published events in order. User is the zero
// ObjectID for platform-wide broadcasts and the room owner for scoped sends.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	Type    string
	Payload interface{}
	User    primitive.ObjectID
}

func (p *recordingPublisher) Broadcast(eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) SendToUser(userID primitive.ObjectID, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload, User: userID})
}

func (p *recordingPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}
