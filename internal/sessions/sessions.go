// Package sessions defines the session token store used by the auth
// service, with in-memory and Redis implementations.
package sessions

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a token has no stored session
var ErrNotFound = errors.New("session not found")

// Session associates an opaque token with a logged-in user
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store defines the interface for session persistence
type Store interface {
	Save(ctx context.Context, session *Session) error
	// Get returns the session for a token, or ErrNotFound.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete removes a session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
	Close() error
}
