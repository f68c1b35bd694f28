package services

import (
	"context"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"
	"safeguard/internal/utils"
)

// HelpCenterService exposes the read-only help-center directory to clients.
type HelpCenterService interface {
	GetActiveCenters(ctx context.Context, centerType models.HelpCenterType) ([]*models.HelpCenter, error)
	GetNearbyCenters(ctx context.Context, latitude, longitude float64) ([]models.HelpCenterSummary, error)
}

type helpCenterService struct {
	centerRepo interfaces.HelpCenterRepository
	matcher    MatcherService
}

func NewHelpCenterService(centerRepo interfaces.HelpCenterRepository, matcher MatcherService) HelpCenterService {
	return &helpCenterService{
		centerRepo: centerRepo,
		matcher:    matcher,
	}
}

func (s *helpCenterService) GetActiveCenters(ctx context.Context, centerType models.HelpCenterType) ([]*models.HelpCenter, error) {
	if centerType != "" {
		return s.centerRepo.GetActiveByType(ctx, centerType)
	}
	return s.centerRepo.GetActiveCenters(ctx)
}

func (s *helpCenterService) GetNearbyCenters(ctx context.Context, latitude, longitude float64) ([]models.HelpCenterSummary, error) {
	if !utils.IsValidCoordinate(latitude, longitude) {
		return nil, ErrInvalidCoordinates
	}

	matches, err := s.matcher.FindNearest(ctx, latitude, longitude)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.HelpCenterSummary, 0, len(matches))
	for _, match := range matches {
		summaries = append(summaries, models.HelpCenterSummary{
			ID:         match.Center.ID,
			Name:       match.Center.Name,
			Type:       match.Center.Type,
			DistanceKM: match.DistanceKM,
			Phone:      match.Center.Contact.Phone,
		})
	}

	return summaries, nil
}
