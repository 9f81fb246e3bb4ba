package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"diary/internal/dependencies/clock"
	"diary/internal/model"
	"diary/internal/sessions"
	"diary/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Service handles registration, login and session management
type Service struct {
	storage  storage.Storage
	sessions sessions.Store
	clock    clock.Clock
	logger   *slog.Logger

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 7 * 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, sessionStore sessions.Store, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		sessions:        sessionStore,
		clock:           clock,
		logger:          logger,
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a new user account. It does not log the user in;
// the caller is expected to send them to the login page.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", model.ErrValidation)
	}
	if len(username) > model.MaxUsernameLen {
		return nil, fmt.Errorf("%w: username must be at most %d characters", model.ErrValidation, model.MaxUsernameLen)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", model.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	// The store's uniqueness constraint is the source of truth; no
	// lookup-then-insert race here.
	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	s.logger.Info("user registered", slog.String("username", user.Username), slog.Int64("user_id", user.ID))
	return user, nil
}

// Login authenticates a user and creates a session.
// Unknown usernames and wrong passwords are indistinguishable to the
// caller, to avoid username enumeration.
func (s *Service) Login(ctx context.Context, username, password string) (*sessions.Session, error) {
	user, err := s.storage.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, user)
}

// ValidateSession resolves a session token to the full user identity.
// Expired sessions are deleted lazily and reported as invalid.
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if s.clock.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrInvalidSession
	}

	user, err := s.storage.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return user, nil
}

// Logout invalidates a session token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// createSession creates a new session for a user
func (s *Service) createSession(ctx context.Context, user *model.User) (*sessions.Session, error) {
	now := s.clock.Now()

	session := &sessions.Session{
		Token:     generateToken(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session created", slog.Int64("user_id", user.ID))
	return session, nil
}

// generateToken generates a random opaque session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
