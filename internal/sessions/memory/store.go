package memory

import (
	"context"
	"sync"

	"diary/internal/sessions"
)

// Store is an in-memory implementation of the session store
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessions.Session
}

// New creates a new in-memory session store
func New() *Store {
	return &Store{
		sessions: make(map[string]*sessions.Session),
	}
}

// Ensure Store implements the interface
var _ sessions.Store = (*Store)(nil)

func (s *Store) Save(ctx context.Context, session *sessions.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *session
	s.sessions[session.Token] = &sess
	return nil
}

func (s *Store) Get(ctx context.Context, token string) (*sessions.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, sessions.ErrNotFound
	}
	sess := *session
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Close is a no-op for in-memory storage
func (s *Store) Close() error {
	return nil
}
