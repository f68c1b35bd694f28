package services

import (
	"context"
	"fmt"

	"safeguard/internal/models"
	"safeguard/internal/repositories/interfaces"
)

// DashboardStats backs the monitoring dashboard overview.
type DashboardStats struct {
	TotalUsers     int64              `json:"total_users"`
	ActiveAlerts   int64              `json:"active_alerts"`
	ResolvedAlerts int64              `json:"resolved_alerts"`
	HelpCenters    int64              `json:"help_centers"`
	RecentAlerts   []*models.SOSAlert `json:"recent_alerts"`
}

type AdminService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type adminService struct {
	sosRepo    interfaces.SOSRepository
	userRepo   interfaces.UserRepository
	centerRepo interfaces.HelpCenterRepository
}

func NewAdminService(
	sosRepo interfaces.SOSRepository,
	userRepo interfaces.UserRepository,
	centerRepo interfaces.HelpCenterRepository,
) AdminService {
	return &adminService{
		sosRepo:    sosRepo,
		userRepo:   userRepo,
		centerRepo: centerRepo,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	totalUsers, err := s.userRepo.CountByRole(ctx, models.UserRoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	activeAlerts, err := s.sosRepo.CountByStatus(ctx, models.SOSStatusActive)
	if err != nil {
		return nil, err
	}

	resolvedAlerts, err := s.sosRepo.CountByStatus(ctx, models.SOSStatusResolved)
	if err != nil {
		return nil, err
	}

	helpCenters, err := s.centerRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	recentAlerts, err := s.sosRepo.GetRecent(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:     totalUsers,
		ActiveAlerts:   activeAlerts,
		ResolvedAlerts: resolvedAlerts,
		HelpCenters:    helpCenters,
		RecentAlerts:   recentAlerts,
	}, nil
}
