package leaderboard

import (
	"context"
	"sort"
	"sync"
)

// fakeStore is an in-memory Store honoring the same conflict semantics as the
// Postgres-backed one.
type fakeStore struct {
	mu      sync.Mutex
	records []Record

	// Forced ErrConflict injections, consumed one per call.
	insertConflicts  int
	replaceConflicts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) FindByKey(_ context.Context, playerID string, mode Mode) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.PlayerID == playerID && r.Mode == mode {
			rec := r
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) Insert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertConflicts > 0 {
		s.insertConflicts--
		return ErrConflict
	}
	for _, r := range s.records {
		if r.PlayerID == rec.PlayerID && r.Mode == rec.Mode {
			return ErrConflict
		}
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *fakeStore) Replace(_ context.Context, id string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replaceConflicts > 0 {
		s.replaceConflicts--
		return ErrConflict
	}
	for i, r := range s.records {
		if r.ID == id {
			if r.Score >= rec.Score {
				return ErrConflict
			}
			s.records[i] = rec
			return nil
		}
	}
	return ErrConflict
}

func (s *fakeStore) Query(_ context.Context, f Filter, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Record
	for _, r := range s.records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) DeleteMany(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.records[:0]
	for _, r := range s.records {
		if !drop[r.ID] {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

// seed bypasses the unique-key check so tests can stage duplicate rows, the
// state the sweeper exists to repair.
func (s *fakeStore) seed(recs ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, recs...)
}

var _ Store = (*fakeStore)(nil)
