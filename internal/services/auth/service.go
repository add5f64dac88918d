package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sportsday/sportsday/internal/dependencies/clock"
	"github.com/sportsday/sportsday/internal/model"
	"github.com/sportsday/sportsday/internal/session"
	"github.com/sportsday/sportsday/internal/store"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Service handles registration, login and session management
type Service struct {
	storage  store.Store
	sessions session.Store
	clock    clock.Clock

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage store.Store, sessions session.Store, clk clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		sessions:        sessions,
		clock:           clk,
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a user account with a hashed password.
// Returns model.ErrEmailExists if the email is already registered.
// Registration does not log the user in; they proceed to the login form.
func (s *Service) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and creates an auth session holding a
// snapshot of the user. A missing user and a wrong password both return
// ErrInvalidCredentials, with no distinction.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Record, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	rec := &session.Record{
		Token:     session.NewToken(),
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.sessions.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ValidateSession returns the user bound to a session token
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	rec, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	user := rec.User
	return &user, nil
}

// Logout destroys the session for a token. Destroying a session that
// does not exist is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}
