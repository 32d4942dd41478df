package registry

import "errors"

// Sentinel errors returned by registry operations.
var (
	ErrClubNotFound   = errors.New("club not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")

	// ErrMissingOutcome is returned when a match is completed without a
	// winner or final score.
	ErrMissingOutcome = errors.New("winner and final score are required to complete a match")

	// ErrInvalidStatus is returned for a lifecycle state outside the known set.
	ErrInvalidStatus = errors.New("invalid match status")
)
