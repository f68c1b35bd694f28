package services

import (
	"context"
	"fmt"
	"sort"

	"safeguard/internal/config"
	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"
	"safeguard/internal/utils"
)

// HelpCenterMatch pairs a help center with its distance from a trigger point.
type HelpCenterMatch struct {
	Center     *models.HelpCenter
	DistanceKM float64
}

// MatcherService ranks active help centers by distance from a coordinate,
// bounded by a search radius and a result cap. The scan is a brute-force pass
// over the active directory, which is fine at directory scale; a spatial
// index could replace it behind this interface without touching callers.
type MatcherService interface {
	FindNearest(ctx context.Context, latitude, longitude float64) ([]HelpCenterMatch, error)
}

type matcherService struct {
	centerRepo interfaces.HelpCenterRepository
	radiusKM   float64
	maxResults int
}

func NewMatcherService(centerRepo interfaces.HelpCenterRepository, cfg *config.SOSConfig) MatcherService {
	radius := cfg.SearchRadiusKM
	if radius <= 0 {
		radius = utils.DefaultSearchRadiusKM
	}
	maxResults := cfg.MaxNotifyCenters
	if maxResults <= 0 {
		maxResults = utils.MaxNotifiedCenters
	}

	return &matcherService{
		centerRepo: centerRepo,
		radiusKM:   radius,
		maxResults: maxResults,
	}
}

func (s *matcherService) FindNearest(ctx context.Context, latitude, longitude float64) ([]HelpCenterMatch, error) {
	centers, err := s.centerRepo.GetActiveCenters(ctx)
	if err != nil {
		// A directory outage must surface as a failure, never as an empty
		// match list.
		return nil, fmt.Errorf("failed to load help center directory: %w", err)
	}

	var matches []HelpCenterMatch
	for _, center := range centers {
		distance := utils.CalculateDistance(
			latitude,
			longitude,
			center.Location.Latitude,
			center.Location.Longitude,
		)
		if distance <= s.radiusKM {
			matches = append(matches, HelpCenterMatch{
				Center:     center,
				DistanceKM: distance,
			})
		}
	}

	// Sort ascending by distance; equal distances fall back to center ID so
	// the ordering is deterministic.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKM != matches[j].DistanceKM {
			return matches[i].DistanceKM < matches[j].DistanceKM
		}
		return matches[i].Center.ID.Hex() < matches[j].Center.ID.Hex()
	})

	if len(matches) > s.maxResults {
		matches = matches[:s.maxResults]
	}

	return matches, nil
}
