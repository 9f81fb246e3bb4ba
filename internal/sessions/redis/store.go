package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"diary/internal/sessions"
)

// Store is a Redis-backed implementation of the session store.
// Sessions are stored as JSON values with a TTL matching their expiry,
// so Redis reclaims abandoned sessions on its own.
type Store struct {
	client *redis.Client
}

// New creates a new Redis session store
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client}, nil
}

// NewWithClient creates a Redis session store with an existing client (for testing)
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Ensure Store implements the interface
var _ sessions.Store = (*Store)(nil)

func (s *Store) Save(ctx context.Context, session *sessions.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
		if ttl <= 0 {
			// Already expired; nothing worth storing
			return nil
		}
	}

	return s.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (s *Store) Get(ctx context.Context, token string) (*sessions.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sessions.ErrNotFound
		}
		return nil, err
	}

	var session sessions.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}
