package session

import (
	"context"
	"sync"

	"github.com/jafarshop/myorders/pkg/errors"
)

// MemoryStore implements Store in process memory.
// Suitable for single-instance deployments and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Get returns a copy of the stored session
func (s *MemoryStore) Get(ctx context.Context, key string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "session", ID: key}
	}
	return &sess, nil
}

// Save stores a copy of the session under its key
func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.Key] = *sess
	return nil
}

var _ Store = (*MemoryStore)(nil)
