// Package progress is the core of the tracker: it turns raw
// "watched N minutes of video V" samples into persisted per-user state
// and derives account-wide statistics from it.
package progress

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/example/videotrack/internal/store"
)

var (
	// ErrVideoNotFound signals that the video id does not resolve.
	ErrVideoNotFound = errors.New("video not found")
	// ErrInvalidWatchedMinutes signals a negative sample. Rejected before
	// any store access.
	ErrInvalidWatchedMinutes = errors.New("invalid watched minutes")
	// ErrPersistence wraps storage failures. The underlying cause stays
	// on the chain; no retry happens at this layer.
	ErrPersistence = errors.New("persistence failure")
)

// Policy controls how a new sample combines with the stored record.
// The zero value is last-write-wins: a smaller sample overwrites the
// stored minutes and can flip a completed record back to incomplete.
type Policy struct {
	// MonotoneMinutes keeps stored minutes non-decreasing
	// (effective = max(existing, submitted)).
	MonotoneMinutes bool
	// StickyCompletion latches the completed flag once true.
	StickyCompletion bool
}

// Monotone is the policy a monotone product wants: both flags on.
func Monotone() Policy {
	return Policy{MonotoneMinutes: true, StickyCompletion: true}
}

// Result is the canonical payload for a progress update.
type Result struct {
	WatchedMinutes int     `json:"watched_minutes"`
	Completed      bool    `json:"completed"`
	Percentage     float64 `json:"percentage"`
}

// Engine applies the progress policy and delegates persistence to the
// store. It holds no locks; the store's atomic upsert is the sole
// synchronization point for a (user, video) key.
type Engine struct {
	Catalog  store.CatalogStore
	Progress store.ProgressStore
	Policy   Policy
}

// RecordProgress validates the sample, resolves the video, decides
// completion, and upserts the record. The returned Result reflects the
// stored state, so monotone mode reports the latched values.
func (e *Engine) RecordProgress(ctx context.Context, userID, videoID int64, watchedMinutes int) (Result, error) {
	if watchedMinutes < 0 {
		return Result{}, ErrInvalidWatchedMinutes
	}

	video, ok, err := e.Catalog.GetVideo(ctx, videoID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if !ok {
		return Result{}, ErrVideoNotFound
	}

	effective := watchedMinutes
	completed := watchedMinutes >= video.DurationMinutes

	if e.Policy.MonotoneMinutes || e.Policy.StickyCompletion {
		prev, found, err := e.Progress.Get(ctx, userID, videoID)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		if found {
			if e.Policy.MonotoneMinutes && prev.WatchedMinutes > effective {
				effective = prev.WatchedMinutes
			}
			completed = effective >= video.DurationMinutes
			if e.Policy.StickyCompletion && prev.Completed {
				completed = true
			}
		}
	}

	rec, err := e.Progress.Upsert(ctx, userID, videoID, effective, completed)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return Result{
		WatchedMinutes: rec.WatchedMinutes,
		Completed:      rec.Completed,
		Percentage:     Percentage(rec.WatchedMinutes, video.DurationMinutes),
	}, nil
}

// Percentage derives the watch percentage, capped at 100 and rounded to
// one decimal. Zero-duration videos report 0; the value is never stored.
func Percentage(watchedMinutes, durationMinutes int) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	p := float64(watchedMinutes) / float64(durationMinutes) * 100
	if p > 100 {
		p = 100
	}
	return math.Round(p*10) / 10
}
