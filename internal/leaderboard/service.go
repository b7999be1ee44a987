package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// submitAttempts bounds the retry loop for races the store reports as
// ErrConflict.
const submitAttempts = 3

// Service applies the best-score-per-(player, mode) policy over a Store.
// It is stateless between calls.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Submit resolves a new score against the retained record for the same
// (player, mode) pair: Insert when none exists, Replace when the new score is
// strictly higher, Reject otherwise. Two concurrent submissions for one pair
// may race; the store signals the loser with ErrConflict and Submit retries.
func (s *Service) Submit(ctx context.Context, rec Record) (SubmitResult, error) {
	if err := rec.Validate(); err != nil {
		return SubmitResult{}, err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now().UTC()
	}

	var lastErr error
	for attempt := 0; attempt < submitAttempts; attempt++ {
		existing, err := s.store.FindByKey(ctx, rec.PlayerID, rec.Mode)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return SubmitResult{}, err
		}

		if existing == nil {
			if err := s.store.Insert(ctx, rec); err != nil {
				if errors.Is(err, ErrConflict) {
					lastErr = err
					continue
				}
				return SubmitResult{}, err
			}
			return SubmitResult{Action: ActionInsert, Record: rec}, nil
		}

		if rec.Score <= existing.Score {
			return SubmitResult{Action: ActionReject, Record: *existing}, nil
		}

		replacement := rec
		replacement.ID = existing.ID
		if err := s.store.Replace(ctx, existing.ID, replacement); err != nil {
			if errors.Is(err, ErrConflict) {
				lastErr = err
				continue
			}
			return SubmitResult{}, err
		}
		return SubmitResult{Action: ActionReplace, Record: replacement}, nil
	}

	return SubmitResult{}, fmt.Errorf("submit for player %s (%s) unresolved after %d attempts: %w",
		rec.PlayerID, rec.Mode, submitAttempts, lastErr)
}

// Leaderboard reads the filtered view and re-derives ranks. When limit <= 0
// the historical page size for the view is used (100 global, 50 per place).
func (s *Service) Leaderboard(ctx context.Context, f Filter, limit int) ([]Ranked, error) {
	if limit <= 0 {
		if f.Place != "" {
			limit = DefaultPlaceLimit
		} else {
			limit = DefaultGlobalLimit
		}
	}

	records, err := s.store.Query(ctx, f, limit)
	if err != nil {
		return nil, err
	}
	// The store already filtered; ranking is re-derived here so stored order
	// is never trusted for positions.
	return Rank(records, Filter{}, 0), nil
}

// BestScore returns the player's highest retained score within the filter,
// or ErrNotFound. An empty result is a legitimate state for the caller to
// render, not a failure.
func (s *Service) BestScore(ctx context.Context, playerID string, f Filter) (*Ranked, error) {
	modes := Modes
	if f.Mode != "" {
		modes = []Mode{f.Mode}
	}

	var best *Record
	for _, m := range modes {
		rec, err := s.store.FindByKey(ctx, playerID, m)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if f.Place != "" && rec.Place != f.Place {
			continue
		}
		if best == nil || rec.Score > best.Score ||
			(rec.Score == best.Score && rec.SubmittedAt.After(best.SubmittedAt)) {
			best = rec
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	return &Ranked{Record: *best}, nil
}
