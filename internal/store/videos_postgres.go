package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCatalogStore reads the pre-seeded video catalog from Postgres.
type PostgresCatalogStore struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogStore(db *pgxpool.Pool) *PostgresCatalogStore {
	return &PostgresCatalogStore{db: db}
}

func (s *PostgresCatalogStore) ListVideos(ctx context.Context) ([]Video, error) {
	const q = `SELECT id, title, description, duration_minutes, url, thumbnail_url, created_at
	           FROM videos ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var out []Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.DurationMinutes, &v.URL, &v.ThumbnailURL, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return out, nil
}

func (s *PostgresCatalogStore) GetVideo(ctx context.Context, id int64) (Video, bool, error) {
	const q = `SELECT id, title, description, duration_minutes, url, thumbnail_url, created_at
	           FROM videos WHERE id=$1`
	var v Video
	err := s.db.QueryRow(ctx, q, id).
		Scan(&v.ID, &v.Title, &v.Description, &v.DurationMinutes, &v.URL, &v.ThumbnailURL, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Video{}, false, nil
		}
		return Video{}, false, fmt.Errorf("get video: %w", err)
	}
	return v, true, nil
}

func (s *PostgresCatalogStore) CountVideos(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM videos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return count, nil
}
