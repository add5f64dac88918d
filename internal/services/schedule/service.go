package schedule

import (
	"context"
	"log/slog"

	"github.com/sportsday/sportsday/internal/dependencies/clock"
	"github.com/sportsday/sportsday/internal/model"
	"github.com/sportsday/sportsday/internal/store"
)

// Service handles the sport catalog, scheduled sessions and memberships
type Service struct {
	storage store.Store
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new schedule Service
func New(storage store.Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// CreateSport adds a sport to the catalog. Names are not deduplicated;
// creating the same name twice produces two distinct sports.
func (s *Service) CreateSport(ctx context.Context, name string) (*model.Sport, error) {
	sport := &model.Sport{
		Name:      name,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.CreateSport(ctx, sport); err != nil {
		return nil, err
	}
	return sport, nil
}

// ListSports returns the full sport catalog
func (s *Service) ListSports(ctx context.Context) ([]model.Sport, error) {
	return s.storage.ListSports(ctx)
}

// CreateSession schedules a session created by the given user. The
// creator id always comes from the authenticated caller, never from the
// submitted session.
func (s *Service) CreateSession(ctx context.Context, creator model.UserID, sess *model.Session) (*model.Session, error) {
	sess.CreatorID = creator
	sess.CreatedAt = s.clock.Now()
	if err := s.storage.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteSession removes a session and its memberships. Unknown ids are
// a no-op.
func (s *Service) DeleteSession(ctx context.Context, id model.SessionID) error {
	return s.storage.DeleteSession(ctx, id)
}

// ListSessions returns all sessions joined with sport and creator names
func (s *Service) ListSessions(ctx context.Context) ([]model.SessionDetail, error) {
	return s.storage.ListSessionDetails(ctx)
}

// JoinSession records that a player joined a session. Joining a session
// the player already belongs to is a no-op.
func (s *Service) JoinSession(ctx context.Context, sessionID model.SessionID, playerID model.UserID) error {
	joined, err := s.storage.AddSessionPlayer(ctx, sessionID, playerID)
	if err != nil {
		return err
	}
	if !joined {
		s.logger.Debug("player already joined session",
			slog.Int64("session_id", int64(sessionID)),
			slog.Int64("player_id", int64(playerID)),
		)
	}
	return nil
}

// SessionPlayers returns the ids of the players who joined a session
func (s *Service) SessionPlayers(ctx context.Context, sessionID model.SessionID) ([]model.UserID, error) {
	return s.storage.ListSessionPlayers(ctx, sessionID)
}

// SportPopularity returns the session count per sport name, for sports
// with at least one session
func (s *Service) SportPopularity(ctx context.Context) ([]model.SportPopularity, error) {
	return s.storage.SportPopularity(ctx)
}
