package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB owns the connection pool. It is constructed once at process start and
// passed to the stores that need it; transport security comes solely from the
// connection string, with no fallback modes.
type DB struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// RunMigrations runs database migrations
func (db *DB) RunMigrations(ctx context.Context) error {
	// The unique index on (player_id, game_mode) backs the best-score-per-pair
	// policy: a concurrent duplicate insert fails with 23505 and the caller
	// retries against the winner's row.
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scores (
			id TEXT PRIMARY KEY,
			player_id TEXT NOT NULL,
			display_name TEXT NOT NULL DEFAULT '',
			avatar_ref TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			game_mode TEXT NOT NULL,
			place TEXT NOT NULL,
			distance_km DOUBLE PRECISION,
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_scores_player_mode ON scores(player_id, game_mode);
		CREATE INDEX IF NOT EXISTS idx_scores_board ON scores(score DESC, submitted_at DESC);
	`)
	return err
}
