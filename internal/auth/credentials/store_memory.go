package credentials

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"noticebase/pkg/platform/sentinel"
)

// InMemoryStore holds credentials loaded from configuration.
type InMemoryStore struct {
	mu     sync.RWMutex
	hashes map[string]string
}

func NewInMemory(hashes map[string]string) *InMemoryStore {
	return &InMemoryStore{hashes: maps.Clone(hashes)}
}

func (s *InMemoryStore) Find(_ context.Context, username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.hashes[username]
	if !ok {
		return "", fmt.Errorf("officer %q: %w", username, sentinel.ErrNotFound)
	}
	return hash, nil
}

func (s *InMemoryStore) Upsert(_ context.Context, username, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hashes == nil {
		s.hashes = make(map[string]string)
	}
	s.hashes[username] = hash
	return nil
}
