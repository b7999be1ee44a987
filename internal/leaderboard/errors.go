package leaderboard

import "errors"

var (
	// ErrValidation marks a submission with missing or malformed required
	// fields. It is raised before storage is touched.
	ErrValidation = errors.New("invalid score submission")

	// ErrNotFound is returned when a player has no record matching a filter.
	ErrNotFound = errors.New("no score found")

	// ErrConflict is returned by the store when a concurrent submission won
	// the race for a (player, mode) slot. Submit retries a bounded number of
	// times before surfacing it.
	ErrConflict = errors.New("concurrent submission conflict")
)
