package services

import "errors"

var (
	// ErrInvalidCoordinates rejects a trigger whose coordinate falls outside
	// the WGS-84 range before any side effect happens.
	ErrInvalidCoordinates = errors.New("coordinates out of range")

	// ErrInvalidTargetStatus rejects a transition to anything other than
	// resolved or false-alarm.
	ErrInvalidTargetStatus = errors.New("invalid target status")
)
