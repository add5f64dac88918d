package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sportsday/sportsday/internal/model"
	"github.com/sportsday/sportsday/internal/store"
)

// Storage is an in-memory implementation of the store interface,
// used for tests and local development
type Storage struct {
	mu sync.RWMutex

	users       map[model.UserID]*model.User
	emailIndex  map[string]model.UserID
	sports      map[model.SportID]*model.Sport
	sessions    map[model.SessionID]*model.Session
	memberships map[membershipKey]struct{}

	nextUserID    model.UserID
	nextSportID   model.SportID
	nextSessionID model.SessionID
}

type membershipKey struct {
	sessionID model.SessionID
	playerID  model.UserID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:       make(map[model.UserID]*model.User),
		emailIndex:  make(map[string]model.UserID),
		sports:      make(map[model.SportID]*model.Sport),
		sessions:    make(map[model.SessionID]*model.Session),
		memberships: make(map[membershipKey]struct{}),
	}
}

// Ensure Storage implements the interface
var _ store.Store = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emailIndex[user.Email]; exists {
		return model.ErrEmailExists
	}

	s.nextUserID++
	user.ID = s.nextUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	stored := *user
	s.users[user.ID] = &stored
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

// Sport operations

func (s *Storage) CreateSport(ctx context.Context, sport *model.Sport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSportID++
	sport.ID = s.nextSportID
	if sport.CreatedAt.IsZero() {
		sport.CreatedAt = time.Now()
	}

	stored := *sport
	s.sports[sport.ID] = &stored
	return nil
}

func (s *Storage) ListSports(ctx context.Context) ([]model.Sport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sports := make([]model.Sport, 0, len(s.sports))
	for _, sport := range s.sports {
		sports = append(sports, *sport)
	}
	sort.Slice(sports, func(i, j int) bool { return sports[i].ID < sports[j].ID })
	return sports, nil
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sports[session.SportID]; !ok {
		return model.ErrInvalidReference
	}
	if _, ok := s.users[session.CreatorID]; !ok {
		return model.ErrInvalidReference
	}

	s.nextSessionID++
	session.ID = s.nextSessionID
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	stored := *session
	s.sessions[session.ID] = &stored
	return nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	for key := range s.memberships {
		if key.sessionID == id {
			delete(s.memberships, key)
		}
	}
	return nil
}

func (s *Storage) ListSessionDetails(ctx context.Context) ([]model.SessionDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	details := make([]model.SessionDetail, 0, len(s.sessions))
	for _, session := range s.sessions {
		detail := model.SessionDetail{Session: *session}
		if sport, ok := s.sports[session.SportID]; ok {
			detail.SportName = sport.Name
		}
		if creator, ok := s.users[session.CreatorID]; ok {
			detail.CreatorName = creator.Name
		}
		details = append(details, detail)
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })
	return details, nil
}

// Membership operations

func (s *Storage) AddSessionPlayer(ctx context.Context, sessionID model.SessionID, playerID model.UserID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false, model.ErrInvalidReference
	}
	if _, ok := s.users[playerID]; !ok {
		return false, model.ErrInvalidReference
	}

	key := membershipKey{sessionID: sessionID, playerID: playerID}
	if _, exists := s.memberships[key]; exists {
		return false, nil
	}
	s.memberships[key] = struct{}{}
	return true, nil
}

func (s *Storage) ListSessionPlayers(ctx context.Context, sessionID model.SessionID) ([]model.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var players []model.UserID
	for key := range s.memberships {
		if key.sessionID == sessionID {
			players = append(players, key.playerID)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })
	return players, nil
}

// Reporting

func (s *Storage) SportPopularity(ctx context.Context) ([]model.SportPopularity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Grouped by sport name, matching the SQL GROUP BY semantics
	counts := make(map[string]int)
	for _, session := range s.sessions {
		sport, ok := s.sports[session.SportID]
		if !ok {
			continue
		}
		counts[sport.Name]++
	}

	popularity := make([]model.SportPopularity, 0, len(counts))
	for name, count := range counts {
		popularity = append(popularity, model.SportPopularity{
			SportName:    name,
			SessionCount: count,
		})
	}
	sort.Slice(popularity, func(i, j int) bool {
		return popularity[i].SportName < popularity[j].SportName
	})
	return popularity, nil
}
