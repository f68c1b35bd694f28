package interfaces

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlertClosed is returned when a status transition targets an alert
	// that is already in a terminal state. Terminal alerts never change again.
	ErrAlertClosed = errors.New("alert already closed")
)
