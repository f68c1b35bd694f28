package services

import (
	"context"
	"fmt"
	"time"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"
	"safeguard/internal/utils"
	"safeguard/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TriggerParams carries everything needed to dispatch one SOS alert.
type TriggerParams struct {
	UserID    primitive.ObjectID
	Latitude  float64
	Longitude float64
	Address   string
	Source    models.SOSSource
	DeviceID  string
}

// SOSService is the dispatch engine: it validates a trigger, snapshots the
// fan-out targets, persists the alert in one atomic write and publishes the
// real-time event only after the record is durable.
type SOSService interface {
	TriggerSOS(ctx context.Context, params TriggerParams) (*models.SOSReceipt, error)
	UpdateStatus(ctx context.Context, sosID primitive.ObjectID, target models.SOSStatus, actorID primitive.ObjectID, notes string) (*models.SOSAlert, error)

	GetByID(ctx context.Context, sosID primitive.ObjectID) (*models.SOSAlert, error)
	GetUserAlerts(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error)
	ListAlerts(ctx context.Context, filter interfaces.SOSFilter, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error)
}

type sosService struct {
	sosRepo     interfaces.SOSRepository
	userRepo    interfaces.UserRepository
	contactRepo interfaces.ContactRepository
	matcher     MatcherService
	publisher   AlertPublisher
	logger      *logger.Logger
}

func NewSOSService(
	sosRepo interfaces.SOSRepository,
	userRepo interfaces.UserRepository,
	contactRepo interfaces.ContactRepository,
	matcher MatcherService,
	publisher AlertPublisher,
	log *logger.Logger,
) SOSService {
	return &sosService{
		sosRepo:     sosRepo,
		userRepo:    userRepo,
		contactRepo: contactRepo,
		matcher:     matcher,
		publisher:   publisher,
		logger:      log,
	}
}

func (s *sosService) TriggerSOS(ctx context.Context, params TriggerParams) (*models.SOSReceipt, error) {
	if !utils.IsValidCoordinate(params.Latitude, params.Longitude) {
		return nil, ErrInvalidCoordinates
	}

	user, err := s.userRepo.GetByID(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve subject: %w", err)
	}

	// Snapshot of the active contact directory at this instant, in ascending
	// priority order. Contacts added later are never retroactively notified.
	contacts, err := s.contactRepo.GetActiveByUserID(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load emergency contacts: %w", err)
	}

	matches, err := s.matcher.FindNearest(ctx, params.Latitude, params.Longitude)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	notifiedContacts := make([]models.NotifiedContact, 0, len(contacts))
	for _, contact := range contacts {
		notifiedContacts = append(notifiedContacts, models.NotifiedContact{
			ContactID:  contact.ID,
			NotifiedAt: now,
			Status:     models.ContactNotifySent,
		})
	}

	notifiedCenters := make([]models.NotifiedHelpCenter, 0, len(matches))
	centerSummaries := make([]models.HelpCenterSummary, 0, len(matches))
	for _, match := range matches {
		notifiedCenters = append(notifiedCenters, models.NotifiedHelpCenter{
			HelpCenterID:   match.Center.ID,
			DistanceKM:     match.DistanceKM,
			NotifiedAt:     now,
			ResponseStatus: models.CenterResponsePending,
		})
		centerSummaries = append(centerSummaries, models.HelpCenterSummary{
			ID:         match.Center.ID,
			Name:       match.Center.Name,
			Type:       match.Center.Type,
			DistanceKM: match.DistanceKM,
			Phone:      match.Center.Contact.Phone,
		})
	}

	alert := &models.SOSAlert{
		UserID: params.UserID,
		Location: models.SOSLocation{
			Latitude:  params.Latitude,
			Longitude: params.Longitude,
			Address:   params.Address,
		},
		Status:              models.SOSStatusActive,
		Priority:            models.SOSPriorityCritical,
		Source:              params.Source,
		DeviceID:            params.DeviceID,
		NotifiedContacts:    notifiedContacts,
		NotifiedHelpCenters: notifiedCenters,
	}

	// The only alert write in the whole trigger path. If it fails the caller
	// gets an error and no record is visible anywhere.
	if err := s.sosRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	s.logger.WithSOSID(alert.ID).WithUserID(params.UserID).WithFields(map[string]interface{}{
		"source":                string(params.Source),
		"contacts_notified":     len(notifiedContacts),
		"help_centers_notified": len(notifiedCenters),
	}).Info("SOS alert dispatched")

	// Publish strictly after persistence so observers querying the store on
	// receipt of the event always see a consistent record.
	s.publisher.Broadcast(models.EventNewSOSAlert, &models.NewSOSAlertEvent{
		SOSID:              alert.ID,
		User:               user.Summary(),
		Location:           alert.Location,
		Source:             alert.Source,
		DeviceID:           alert.DeviceID,
		NearestHelpCenters: centerSummaries,
		Timestamp:          alert.CreatedAt,
	})

	return &models.SOSReceipt{
		SOSID:               alert.ID,
		ContactsNotified:    len(notifiedContacts),
		HelpCentersNotified: len(notifiedCenters),
		NearestHelpCenters:  centerSummaries,
		CreatedAt:           alert.CreatedAt,
	}, nil
}

func (s *sosService) UpdateStatus(ctx context.Context, sosID primitive.ObjectID, target models.SOSStatus, actorID primitive.ObjectID, notes string) (*models.SOSAlert, error) {
	if !target.IsTerminal() {
		return nil, ErrInvalidTargetStatus
	}

	updated, err := s.sosRepo.Transition(ctx, sosID, interfaces.SOSTransition{
		Status:  target,
		ActorID: actorID,
		Notes:   notes,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithSOSID(sosID).WithFields(map[string]interface{}{
		"status":     string(target),
		"updated_by": actorID.Hex(),
	}).Info("SOS alert status updated")

	s.publisher.Broadcast(models.EventStatusUpdated, &models.StatusUpdatedEvent{
		SOSID:     updated.ID,
		Status:    updated.Status,
		UpdatedBy: actorID,
		Timestamp: time.Now(),
	})

	return updated, nil
}

func (s *sosService) GetByID(ctx context.Context, sosID primitive.ObjectID) (*models.SOSAlert, error) {
	return s.sosRepo.GetByID(ctx, sosID)
}

func (s *sosService) GetUserAlerts(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	return s.sosRepo.GetByUserID(ctx, userID, params)
}

func (s *sosService) ListAlerts(ctx context.Context, filter interfaces.SOSFilter, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	return s.sosRepo.List(ctx, filter, params)
}
