package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProgressStore is the production Postgres-backed implementation.
type PostgresProgressStore struct {
	db *pgxpool.Pool
}

func NewPostgresProgressStore(db *pgxpool.Pool) *PostgresProgressStore {
	return &PostgresProgressStore{db: db}
}

func (s *PostgresProgressStore) Get(ctx context.Context, userID, videoID int64) (ProgressRecord, bool, error) {
	const q = `SELECT id, user_id, video_id, watched_minutes, completed, last_watched_at
	           FROM user_video_progress WHERE user_id=$1 AND video_id=$2`
	var rec ProgressRecord
	err := s.db.QueryRow(ctx, q, userID, videoID).
		Scan(&rec.ID, &rec.UserID, &rec.VideoID, &rec.WatchedMinutes, &rec.Completed, &rec.LastWatchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProgressRecord{}, false, nil
		}
		return ProgressRecord{}, false, fmt.Errorf("get progress: %w", err)
	}
	return rec, true, nil
}

func (s *PostgresProgressStore) GetAll(ctx context.Context, userID int64) (map[int64]ProgressRecord, error) {
	const q = `SELECT id, user_id, video_id, watched_minutes, completed, last_watched_at
	           FROM user_video_progress WHERE user_id=$1`
	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]ProgressRecord)
	for rows.Next() {
		var rec ProgressRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.VideoID, &rec.WatchedMinutes, &rec.Completed, &rec.LastWatchedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out[rec.VideoID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return out, nil
}

// Upsert relies on the (user_id, video_id) unique constraint so the
// create-or-overwrite decision happens in a single atomic statement.
func (s *PostgresProgressStore) Upsert(ctx context.Context, userID, videoID int64, watchedMinutes int, completed bool) (ProgressRecord, error) {
	const q = `
INSERT INTO user_video_progress (user_id, video_id, watched_minutes, completed, last_watched_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, video_id)
DO UPDATE SET
  watched_minutes = EXCLUDED.watched_minutes,
  completed       = EXCLUDED.completed,
  last_watched_at = EXCLUDED.last_watched_at
RETURNING id, user_id, video_id, watched_minutes, completed, last_watched_at`

	var rec ProgressRecord
	err := s.db.QueryRow(ctx, q, userID, videoID, watchedMinutes, completed, time.Now().UTC()).
		Scan(&rec.ID, &rec.UserID, &rec.VideoID, &rec.WatchedMinutes, &rec.Completed, &rec.LastWatchedAt)
	if err != nil {
		return ProgressRecord{}, fmt.Errorf("upsert progress: %w", err)
	}
	return rec, nil
}

func (s *PostgresProgressStore) TotalWatchedMinutes(ctx context.Context, userID int64) (int, error) {
	const q = `SELECT COALESCE(SUM(watched_minutes), 0) FROM user_video_progress WHERE user_id=$1`
	var total int
	if err := s.db.QueryRow(ctx, q, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total watched minutes: %w", err)
	}
	return total, nil
}

func (s *PostgresProgressStore) CompletedCount(ctx context.Context, userID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM user_video_progress WHERE user_id=$1 AND completed`
	var count int
	if err := s.db.QueryRow(ctx, q, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("completed count: %w", err)
	}
	return count, nil
}
