package factory

import (
	"errors"
	"io"
	"log/slog"

	"diary/internal/dependencies/clock"
	"diary/internal/services/auth"
	"diary/internal/services/cards"
	"diary/internal/sessions"
	sessionmemory "diary/internal/sessions/memory"
	sessionredis "diary/internal/sessions/redis"
	"diary/internal/storage"
	"diary/internal/storage/memory"
	"diary/internal/storage/sqlite"
	"diary/internal/web/view"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
)

// Session store type constants
const (
	SessionsTypeMemory = "memory"
	SessionsTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage  storage.Storage
	Sessions sessions.Store
	Clock    clock.Clock

	AuthService *auth.Service
	CardService *cards.Service
	Renderer    *view.Renderer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// StorageDSN is the SQLite database path (required for sqlite)
	StorageDSN string
	// SessionsType selects the session store ("memory" or "redis")
	// If empty, defaults to "memory"
	SessionsType string
	// RedisConfig holds Redis settings (required if SessionsType is "redis")
	RedisConfig *sessionredis.Config
	// AuthConfig holds auth service settings (optional)
	AuthConfig auth.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	renderer, err := view.New(logger)
	if err != nil {
		_ = store.Close()
		_ = sessionStore.Close()
		return nil, err
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	clk := clock.New()
	authService := auth.New(store, sessionStore, clk, authCfg, logger)
	cardService := cards.New(store, logger)

	return &App{
		Storage:     store,
		Sessions:    sessionStore,
		Clock:       clk,
		AuthService: authService,
		CardService: cardService,
		Renderer:    renderer,
	}, nil
}

// Close releases the app's storage and session store
func (a *App) Close() error {
	serr := a.Sessions.Close()
	if err := a.Storage.Close(); err != nil {
		return err
	}
	return serr
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeSQLite:
		if cfg.StorageDSN == "" {
			return nil, errors.New("StorageDSN required when StorageType is sqlite")
		}
		return sqlite.Open(cfg.StorageDSN)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'sqlite'")
	}
}

func newSessionStore(cfg Config) (sessions.Store, error) {
	sessionsType := cfg.SessionsType
	if sessionsType == "" {
		sessionsType = SessionsTypeMemory
	}

	switch sessionsType {
	case SessionsTypeMemory:
		return sessionmemory.New(), nil
	case SessionsTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when SessionsType is redis")
		}
		return sessionredis.New(*cfg.RedisConfig)
	default:
		return nil, errors.New("invalid SessionsType: must be 'memory' or 'redis'")
	}
}
