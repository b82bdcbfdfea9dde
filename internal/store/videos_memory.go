package store

import (
	"context"
	"sort"
	"sync"
)

// InMemoryCatalogStore serves a fixed video set. Development and test use.
type InMemoryCatalogStore struct {
	mu     sync.RWMutex
	videos map[int64]Video
}

func NewInMemoryCatalogStore(videos []Video) *InMemoryCatalogStore {
	m := make(map[int64]Video, len(videos))
	for _, v := range videos {
		m[v.ID] = v
	}
	return &InMemoryCatalogStore{videos: m}
}

func (s *InMemoryCatalogStore) ListVideos(_ context.Context) ([]Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Video, 0, len(s.videos))
	for _, v := range s.videos {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *InMemoryCatalogStore) GetVideo(_ context.Context, id int64) (Video, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videos[id]
	return v, ok, nil
}

func (s *InMemoryCatalogStore) CountVideos(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.videos), nil
}
