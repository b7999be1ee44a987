package leaderboard

import "context"

// Store is the persistence collaborator. The leaderboard core never opens
// connections or retries transport failures; it only relies on the store to
// report key conflicts so the best-score invariant survives races.
type Store interface {
	// FindByKey returns the retained record for a (player, mode) pair, or
	// ErrNotFound.
	FindByKey(ctx context.Context, playerID string, mode Mode) (*Record, error)

	// Insert adds a new record. Returns ErrConflict when a record for the
	// same (player, mode) pair already exists.
	Insert(ctx context.Context, rec Record) error

	// Replace overwrites the record with the given id, but only while its
	// stored score is still below rec.Score. Returns ErrConflict when the
	// row is gone or was concurrently raised past rec.Score.
	Replace(ctx context.Context, id string, rec Record) error

	// Query returns the filtered records ordered by score descending then
	// submittedAt descending. A limit of 0 means no limit.
	Query(ctx context.Context, f Filter, limit int) ([]Record, error)

	// DeleteMany removes records by id. Missing ids are not an error.
	DeleteMany(ctx context.Context, ids []string) error
}
