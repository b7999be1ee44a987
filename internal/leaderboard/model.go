package leaderboard

import (
	"fmt"
	"time"

	"github.com/gebeta/geoguess/internal/geoscore"
)

// Mode partitions leaderboards by gameplay variant.
type Mode string

const (
	ModeRandom Mode = "random"
	ModeCity   Mode = "city"
)

// Modes lists every valid game mode.
var Modes = []Mode{ModeRandom, ModeCity}

func (m Mode) Valid() bool {
	return m == ModeRandom || m == ModeCity
}

// Record is one submitted score. At most one record is retained per
// (PlayerID, Mode) pair; lesser submissions are superseded.
type Record struct {
	ID          string    `json:"id"`
	PlayerID    string    `json:"playerId"`
	DisplayName string    `json:"displayName"`
	AvatarRef   string    `json:"avatarRef,omitempty"`
	Score       int       `json:"score"`
	Mode        Mode      `json:"gameMode"`
	Place       string    `json:"city"`
	DistanceKm  *float64  `json:"distanceKm,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Validate checks the fields required before a record may touch storage.
func (r Record) Validate() error {
	if r.PlayerID == "" {
		return fmt.Errorf("%w: playerId is required", ErrValidation)
	}
	if !r.Mode.Valid() {
		return fmt.Errorf("%w: gameMode must be one of %v", ErrValidation, Modes)
	}
	if r.Place == "" {
		return fmt.Errorf("%w: city is required", ErrValidation)
	}
	if r.Score < 0 || r.Score > geoscore.MaxScore {
		return fmt.Errorf("%w: score must be in [0, %d]", ErrValidation, geoscore.MaxScore)
	}
	if r.DistanceKm != nil && *r.DistanceKm < 0 {
		return fmt.Errorf("%w: distanceKm must be non-negative", ErrValidation)
	}
	return nil
}

// Filter narrows a leaderboard view. Zero-valued fields match everything.
type Filter struct {
	Mode  Mode
	Place string
}

// Matches reports whether a record belongs to the filtered view.
func (f Filter) Matches(r Record) bool {
	if f.Mode != "" && r.Mode != f.Mode {
		return false
	}
	if f.Place != "" && r.Place != f.Place {
		return false
	}
	return true
}

// Ranked is a record annotated with its 1-based leaderboard position.
// Rank is always derived at read time, never stored.
type Ranked struct {
	Record
	Rank int `json:"rank,omitempty"`
}

// Action says how a submission was resolved against the retained record.
type Action string

const (
	ActionInsert  Action = "insert"
	ActionReplace Action = "replace"
	ActionReject  Action = "reject"
)

// SubmitResult carries the submit decision and the record now retained for
// the submitter's (player, mode) pair. On Reject that is the pre-existing,
// better-or-equal record.
type SubmitResult struct {
	Action Action
	Record Record
}
