package combat

import "errors"

var (
	// ErrInvalidProbability is returned for a success likelihood outside [0,1].
	ErrInvalidProbability = errors.New("likelihood out of bounds")

	// ErrEmptyRoster is returned when a side has no combatants at battle start.
	ErrEmptyRoster = errors.New("empty roster")

	// ErrMissingCollaborator is returned when a required dependency is nil.
	ErrMissingCollaborator = errors.New("missing collaborator")

	// ErrStalledAction is returned when an action never signals completion
	// within the configured timeout.
	ErrStalledAction = errors.New("action did not complete")

	// ErrActionReleased is returned when a discarded action is queued or run again.
	ErrActionReleased = errors.New("action already released")
)
