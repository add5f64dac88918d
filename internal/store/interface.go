package store

import (
	"context"

	"github.com/sportsday/sportsday/internal/model"
)

// Store defines the interface for durable data persistence.
// All operations are reached through parameterized statements only.
type Store interface {
	// User operations
	// CreateUser assigns the new user's ID on success.
	// Returns model.ErrEmailExists if the email is already registered.
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Sport operations
	// CreateSport assigns the new sport's ID on success. Sport names are
	// not unique; creating the same name twice produces two rows.
	CreateSport(ctx context.Context, sport *model.Sport) error
	ListSports(ctx context.Context) ([]model.Sport, error)

	// Session operations
	// CreateSession assigns the new session's ID on success.
	// Returns model.ErrInvalidReference if the sport or creator
	// reference does not resolve.
	CreateSession(ctx context.Context, session *model.Session) error
	// DeleteSession removes the session and its memberships.
	// Deleting an unknown id is a no-op.
	DeleteSession(ctx context.Context, id model.SessionID) error
	// ListSessionDetails returns all sessions joined with sport name
	// and creator name.
	ListSessionDetails(ctx context.Context) ([]model.SessionDetail, error)

	// Membership operations
	// AddSessionPlayer inserts the (session, player) membership if it is
	// absent. Returns false with no error when the membership already
	// exists; the (session, player) pair is unique.
	AddSessionPlayer(ctx context.Context, sessionID model.SessionID, playerID model.UserID) (bool, error)
	ListSessionPlayers(ctx context.Context, sessionID model.SessionID) ([]model.UserID, error)

	// Reporting
	// SportPopularity returns the session count per sport name for
	// sports that have at least one session.
	SportPopularity(ctx context.Context) ([]model.SportPopularity, error)
}
