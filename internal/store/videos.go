package store

import (
	"context"
	"time"
)

// Video is immutable catalog metadata. The tracker only ever reads it.
type Video struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	URL             string    `json:"url"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// CatalogStore defines read access to the video catalog.
type CatalogStore interface {
	// ListVideos returns the whole catalog, newest first.
	ListVideos(ctx context.Context) ([]Video, error)
	// GetVideo returns the video and whether it exists.
	GetVideo(ctx context.Context, id int64) (Video, bool, error)
	// CountVideos returns the catalog size.
	CountVideos(ctx context.Context) (int, error)
}
