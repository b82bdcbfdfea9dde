package store

import (
	"context"
	"sync"
	"time"
)

// InMemoryProgressStore mirrors the Postgres semantics under a mutex.
// Development and test use only.
type InMemoryProgressStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]map[int64]ProgressRecord // user_id -> video_id -> record
}

func NewInMemoryProgressStore() *InMemoryProgressStore {
	return &InMemoryProgressStore{records: make(map[int64]map[int64]ProgressRecord)}
}

func (s *InMemoryProgressStore) Get(_ context.Context, userID, videoID int64) (ProgressRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID][videoID]
	return rec, ok, nil
}

func (s *InMemoryProgressStore) GetAll(_ context.Context, userID int64) (map[int64]ProgressRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]ProgressRecord, len(s.records[userID]))
	for videoID, rec := range s.records[userID] {
		out[videoID] = rec
	}
	return out, nil
}

func (s *InMemoryProgressStore) Upsert(_ context.Context, userID, videoID int64, watchedMinutes int, completed bool) (ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records[userID] == nil {
		s.records[userID] = make(map[int64]ProgressRecord)
	}

	rec, ok := s.records[userID][videoID]
	if !ok {
		s.nextID++
		rec = ProgressRecord{ID: s.nextID, UserID: userID, VideoID: videoID}
	}
	rec.WatchedMinutes = watchedMinutes
	rec.Completed = completed
	rec.LastWatchedAt = time.Now().UTC()
	s.records[userID][videoID] = rec
	return rec, nil
}

func (s *InMemoryProgressStore) TotalWatchedMinutes(_ context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, rec := range s.records[userID] {
		total += rec.WatchedMinutes
	}
	return total, nil
}

func (s *InMemoryProgressStore) CompletedCount(_ context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, rec := range s.records[userID] {
		if rec.Completed {
			count++
		}
	}
	return count, nil
}
