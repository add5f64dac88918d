package session

import (
	"context"
	"errors"
	"time"

	"github.com/sportsday/sportsday/internal/model"
)

// ErrNotFound is returned when no live record exists for a token
var ErrNotFound = errors.New("auth session not found")

// Record is an AuthSession: an opaque token bound to a snapshot of the
// user captured at login time. Profile changes do not propagate into an
// existing record without re-login.
type Record struct {
	Token     string     `json:"token"`
	User      model.User `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Store defines how auth sessions are stored and retrieved, keyed by the
// token the client presents on every request. Records are only ever
// read and written by key, never iterated.
type Store interface {
	// Create stores the record under its token.
	Create(ctx context.Context, rec *Record) error
	// Get returns the record for the token, or ErrNotFound if the token
	// is unknown or the record has expired.
	Get(ctx context.Context, token string) (*Record, error)
	// Destroy removes the record. Destroying an unknown token is not an
	// error.
	Destroy(ctx context.Context, token string) error
}
