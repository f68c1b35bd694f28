package utils

import "time"

// Application Constants
const (
	AppName    = "SafeGuard"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Geo
	EarthRadiusKM = 6371.0

	// SOS dispatch
	DefaultSearchRadiusKM = 10.0
	MaxNotifiedCenters    = 5
	ActiveAlertCacheTTL   = 5 * time.Minute

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
)
