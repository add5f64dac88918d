package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/sportsday/sportsday/internal/dependencies/clock"
	"github.com/sportsday/sportsday/internal/services/auth"
	"github.com/sportsday/sportsday/internal/services/schedule"
	"github.com/sportsday/sportsday/internal/session"
	"github.com/sportsday/sportsday/internal/store"
	"github.com/sportsday/sportsday/internal/store/memory"
	"github.com/sportsday/sportsday/internal/store/postgres"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"
)

// Session store type constants
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage  store.Store
	Sessions session.Store

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService     *auth.Service
	ScheduleService *schedule.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the credential-store backend
	// ("memory" or "postgres"). If empty, defaults to "memory".
	StorageType string
	// DatabaseURL is the PostgreSQL connection string
	// (required if StorageType is "postgres")
	DatabaseURL string
	// SessionStoreType selects the auth-session backend
	// ("memory" or "redis"). If empty, defaults to "memory".
	SessionStoreType string
	// RedisConfig holds Redis connection settings
	// (required if SessionStoreType is "redis")
	RedisConfig *session.RedisConfig
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	// Create the credential store
	var storage store.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		storage = memory.New()
	case StorageTypePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DatabaseURL required when StorageType is postgres")
		}
		pgStorage, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		storage = pgStorage
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'postgres'")
	}

	// Create the auth session store
	var sessions session.Store
	sessionStoreType := cfg.SessionStoreType
	if sessionStoreType == "" {
		sessionStoreType = SessionStoreMemory
	}

	switch sessionStoreType {
	case SessionStoreMemory:
		sessions = session.NewMemoryStore(clk)
	case SessionStoreRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when SessionStoreType is redis")
		}
		redisSessions, err := session.NewRedisStore(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		sessions = redisSessions
	default:
		return nil, errors.New("invalid SessionStoreType: must be 'memory' or 'redis'")
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return &App{
		Storage:         storage,
		Sessions:        sessions,
		Clock:           clk,
		AuthService:     auth.New(storage, sessions, clk, authCfg),
		ScheduleService: schedule.New(storage, clk, logger),
	}, nil
}
