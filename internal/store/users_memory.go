package store

import (
	"context"
	"sync"
	"time"
)

// InMemoryUserStore keeps users in a map. Development and test use.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]User
	byEmail map[string]int64
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		byID:    make(map[int64]User),
		byEmail: make(map[string]int64),
	}
}

func (s *InMemoryUserStore) CreateUser(_ context.Context, email, passwordHash string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		return User{}, ErrConflict
	}
	s.nextID++
	u := User{ID: s.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	s.byID[u.ID] = u
	s.byEmail[email] = u.ID
	return u, nil
}

func (s *InMemoryUserStore) GetUserByEmail(_ context.Context, email string) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return User{}, false, nil
	}
	return s.byID[id], true, nil
}

func (s *InMemoryUserStore) GetUserByID(_ context.Context, id int64) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	return u, ok, nil
}
