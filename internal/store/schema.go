package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables if they do not exist. Idempotent.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS videos (
			id               BIGSERIAL PRIMARY KEY,
			title            TEXT NOT NULL,
			description      TEXT NOT NULL DEFAULT '',
			duration_minutes INT NOT NULL CHECK (duration_minutes >= 0),
			url              TEXT NOT NULL,
			thumbnail_url    TEXT NOT NULL DEFAULT '',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS user_video_progress (
			id              BIGSERIAL PRIMARY KEY,
			user_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			video_id        BIGINT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			watched_minutes INT NOT NULL DEFAULT 0 CHECK (watched_minutes >= 0),
			completed       BOOLEAN NOT NULL DEFAULT FALSE,
			last_watched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, video_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedCatalog inserts the sample videos when the catalog is empty.
func SeedCatalog(ctx context.Context, db *pgxpool.Pool) error {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM videos`).Scan(&count); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if count > 0 {
		return nil
	}
	const q = `INSERT INTO videos (title, description, duration_minutes, url, thumbnail_url)
	           VALUES ($1, $2, $3, $4, $5)`
	for _, v := range SampleVideos() {
		if _, err := db.Exec(ctx, q, v.Title, v.Description, v.DurationMinutes, v.URL, v.ThumbnailURL); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	return nil
}

// SampleVideos is the fixed starter catalog, also used to back the
// in-memory catalog in development.
func SampleVideos() []Video {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	videos := []Video{
		{Title: "Introduction to Go", Description: "Learn the basics of the Go language", DurationMinutes: 45, URL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4", ThumbnailURL: "https://via.placeholder.com/400x225?text=Go"},
		{Title: "PostgreSQL Tutorial", Description: "Master database operations with PostgreSQL", DurationMinutes: 60, URL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4", ThumbnailURL: "https://via.placeholder.com/400x225?text=PostgreSQL"},
		{Title: "Building Web Applications", Description: "Create web applications step by step", DurationMinutes: 90, URL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4", ThumbnailURL: "https://via.placeholder.com/400x225?text=Web+Apps"},
		{Title: "User Authentication", Description: "Implement login and registration", DurationMinutes: 75, URL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerEscapes.mp4", ThumbnailURL: "https://via.placeholder.com/400x225?text=Authentication"},
		{Title: "JavaScript Basics", Description: "Learn JavaScript fundamentals", DurationMinutes: 120, URL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerFun.mp4", ThumbnailURL: "https://via.placeholder.com/400x225?text=JavaScript"},
		{Title: "HTML & CSS Guide", Description: "Master HTML and CSS styling", DurationMinutes: 55, URL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerJoyrides.mp4", ThumbnailURL: "https://via.placeholder.com/400x225?text=HTML+CSS"},
		{Title: "Bootstrap Framework", Description: "Build responsive websites with Bootstrap", DurationMinutes: 105, URL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerMeltdowns.mp4", ThumbnailURL: "https://via.placeholder.com/400x225?text=Bootstrap"},
		{Title: "REST API Design", Description: "Design clean JSON APIs", DurationMinutes: 50, URL: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/Sintel.mp4", ThumbnailURL: "https://via.placeholder.com/400x225?text=REST"},
	}
	for i := range videos {
		videos[i].ID = int64(i + 1)
		videos[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
	}
	return videos
}
