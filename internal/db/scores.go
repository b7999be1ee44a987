package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gebeta/geoguess/internal/leaderboard"
)

// ScoreStore is the Postgres-backed leaderboard.Store.
type ScoreStore struct {
	db *DB
}

func NewScoreStore(database *DB) *ScoreStore {
	return &ScoreStore{db: database}
}

var _ leaderboard.Store = (*ScoreStore)(nil)

const scoreColumns = "id, player_id, display_name, avatar_ref, score, game_mode, place, distance_km, submitted_at"

func scanRecord(row pgx.Row) (*leaderboard.Record, error) {
	var rec leaderboard.Record
	err := row.Scan(
		&rec.ID, &rec.PlayerID, &rec.DisplayName, &rec.AvatarRef,
		&rec.Score, &rec.Mode, &rec.Place, &rec.DistanceKm, &rec.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *ScoreStore) FindByKey(ctx context.Context, playerID string, mode leaderboard.Mode) (*leaderboard.Record, error) {
	rec, err := scanRecord(s.db.pool.QueryRow(ctx,
		"SELECT "+scoreColumns+" FROM scores WHERE player_id = $1 AND game_mode = $2",
		playerID, mode,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leaderboard.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *ScoreStore) Insert(ctx context.Context, rec leaderboard.Record) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO scores (id, player_id, display_name, avatar_ref, score, game_mode, place, distance_km, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.PlayerID, rec.DisplayName, rec.AvatarRef,
		rec.Score, rec.Mode, rec.Place, rec.DistanceKm, rec.SubmittedAt,
	)
	if err != nil {
		// Unique violation on (player_id, game_mode): a concurrent submit won.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return leaderboard.ErrConflict
		}
		return err
	}
	return nil
}

func (s *ScoreStore) Replace(ctx context.Context, id string, rec leaderboard.Record) error {
	// Conditional on the stored score still being lower, so a replace that
	// lost a race never downgrades the retained record.
	result, err := s.db.pool.Exec(ctx,
		`UPDATE scores
		 SET display_name = $2, avatar_ref = $3, score = $4, place = $5, distance_km = $6, submitted_at = $7
		 WHERE id = $1 AND score < $4`,
		id, rec.DisplayName, rec.AvatarRef, rec.Score, rec.Place, rec.DistanceKm, rec.SubmittedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leaderboard.ErrConflict
	}
	return nil
}

func (s *ScoreStore) Query(ctx context.Context, f leaderboard.Filter, limit int) ([]leaderboard.Record, error) {
	query := "SELECT " + scoreColumns + " FROM scores"
	var args []interface{}
	var conds []string

	if f.Mode != "" {
		args = append(args, f.Mode)
		conds = append(conds, fmt.Sprintf("game_mode = $%d", len(args)))
	}
	if f.Place != "" {
		args = append(args, f.Place)
		conds = append(conds, fmt.Sprintf("place = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY score DESC, submitted_at DESC, id"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []leaderboard.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *ScoreStore) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.pool.Exec(ctx, "DELETE FROM scores WHERE id = ANY($1)", ids)
	return err
}
