package domain

import "errors"

// Sentinel errors crossing the repository and gateway boundaries.
var (
	// ErrMissingSubject is returned when a provider token carries no
	// subject id. Such tokens are treated as invalid credentials.
	ErrMissingSubject = errors.New("provider token has no subject id")

	// ErrUserNotFound is returned by repositories when no record exists
	// for a subject id. Not an anomaly: it is the create path's trigger.
	ErrUserNotFound = errors.New("user record not found")
)
