package services

import (
	"context"
	"fmt"
	"time"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"
	"safeguard/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HardwareService handles SOS buttons and trackers that talk to the platform
// directly. A device resolves to its registered owner before any alert is
// created; an unregistered device fails the call with nothing persisted.
type HardwareService interface {
	TriggerByDevice(ctx context.Context, deviceID string, latitude, longitude float64) (*models.SOSReceipt, error)
	RegisterDevice(ctx context.Context, userID primitive.ObjectID, deviceID string) (*models.User, error)
	Heartbeat(ctx context.Context, deviceID string, latitude, longitude *float64) (*models.User, error)
}

type hardwareService struct {
	userRepo   interfaces.UserRepository
	sosService SOSService
	publisher  AlertPublisher
	logger     *logger.Logger
}

func NewHardwareService(
	userRepo interfaces.UserRepository,
	sosService SOSService,
	publisher AlertPublisher,
	log *logger.Logger,
) HardwareService {
	return &hardwareService{
		userRepo:   userRepo,
		sosService: sosService,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *hardwareService) TriggerByDevice(ctx context.Context, deviceID string, latitude, longitude float64) (*models.SOSReceipt, error) {
	user, err := s.userRepo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve device %q: %w", deviceID, err)
	}

	receipt, err := s.sosService.TriggerSOS(ctx, TriggerParams{
		UserID:    user.ID,
		Latitude:  latitude,
		Longitude: longitude,
		Source:    models.SOSSourceHardware,
		DeviceID:  deviceID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithDeviceID(deviceID).WithUserID(user.ID).WithSOSID(receipt.SOSID).Info("Hardware SOS triggered")

	return receipt, nil
}

func (s *hardwareService) RegisterDevice(ctx context.Context, userID primitive.ObjectID, deviceID string) (*models.User, error) {
	user, err := s.userRepo.SetDeviceID(ctx, userID, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to register device: %w", err)
	}

	s.logger.WithDeviceID(deviceID).WithUserID(userID).Info("Hardware device registered")

	return user, nil
}

func (s *hardwareService) Heartbeat(ctx context.Context, deviceID string, latitude, longitude *float64) (*models.User, error) {
	user, err := s.userRepo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve device %q: %w", deviceID, err)
	}

	// Position is optional on a heartbeat; without it the beat only proves
	// the device is alive.
	if latitude != nil && longitude != nil {
		location := &models.LastLocation{
			Latitude:  *latitude,
			Longitude: *longitude,
			Timestamp: time.Now(),
		}
		if err := s.userRepo.UpdateLastLocation(ctx, user.ID, location); err != nil {
			return nil, err
		}

		// Position reports are scoped to the owner's personal room; watchers
		// subscribe by joining it.
		s.publisher.SendToUser(user.ID, models.EventLiveLocation, &models.LiveLocationEvent{
			UserID:    user.ID,
			DeviceID:  deviceID,
			Latitude:  *latitude,
			Longitude: *longitude,
			Timestamp: location.Timestamp,
		})
	}

	return user, nil
}
