package progress

import (
	"context"
	"fmt"
	"math"

	"github.com/example/videotrack/internal/store"
)

// Stats are account-wide derived metrics. Never persisted; recomputed
// from current store state on every call.
type Stats struct {
	TotalVideos         int     `json:"total_videos"`
	CompletedCount      int     `json:"completed_count"`
	TotalWatchedMinutes int     `json:"total_watched_minutes"`
	TotalWatchedHours   float64 `json:"total_watched_hours"`
}

// Aggregator folds a user's progress records into Stats.
type Aggregator struct {
	Catalog  store.CatalogStore
	Progress store.ProgressStore
}

func (a *Aggregator) ComputeStats(ctx context.Context, userID int64) (Stats, error) {
	totalVideos, err := a.Catalog.CountVideos(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	completed, err := a.Progress.CompletedCount(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	minutes, err := a.Progress.TotalWatchedMinutes(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return Stats{
		TotalVideos:         totalVideos,
		CompletedCount:      completed,
		TotalWatchedMinutes: minutes,
		TotalWatchedHours:   math.Round(float64(minutes)/60*10) / 10,
	}, nil
}
