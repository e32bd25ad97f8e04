// Package credentials abstracts where the bearer token lives. The API
// client reads it on every authenticated request; the session manager
// and the client's 401 handler are the only writers.
package credentials

import (
	"context"
	"sync"
)

// Provider supplies and stores the bearer token. Token returns the empty
// string, not an error, when no token is stored.
type Provider interface {
	Token(ctx context.Context) (string, error)
	Store(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the token in process memory. Writes are
// last-write-wins, which is acceptable: they are rare, user-driven, or
// triggered by a definitive invalidation signal.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryStore) Store(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
