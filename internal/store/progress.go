package store

import (
	"context"
	"time"
)

// ProgressRecord is one user's persisted watch state for one video.
// At most one record exists per (user, video) pair.
type ProgressRecord struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	VideoID        int64     `json:"video_id"`
	WatchedMinutes int       `json:"watched_minutes"`
	Completed      bool      `json:"completed"`
	LastWatchedAt  time.Time `json:"last_watched_at"`
}

// ProgressStore defines keyed persistence for watch progress.
// Upsert is the sole synchronization point for concurrent writes to the
// same (user, video) key; callers hold no locks of their own.
type ProgressStore interface {
	// Get returns the record for (userID, videoID) and whether it exists.
	Get(ctx context.Context, userID, videoID int64) (ProgressRecord, bool, error)
	// GetAll returns every record of the user keyed by video id.
	GetAll(ctx context.Context, userID int64) (map[int64]ProgressRecord, error)
	// Upsert atomically creates or overwrites the record for the key,
	// refreshing its last-watched timestamp, and returns the stored state.
	Upsert(ctx context.Context, userID, videoID int64, watchedMinutes int, completed bool) (ProgressRecord, error)
	// TotalWatchedMinutes sums watched minutes across the user's records.
	TotalWatchedMinutes(ctx context.Context, userID int64) (int, error)
	// CompletedCount counts the user's records with completed = true.
	CompletedCount(ctx context.Context, userID int64) (int, error)
}
