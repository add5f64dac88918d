package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"

	"github.com/sportsday/sportsday/internal/model"
	"github.com/sportsday/sportsday/internal/store"
)

// DB is the subset of pgxpool.Pool the storage uses. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage is a PostgreSQL implementation of the store interface
type Storage struct {
	db DB
}

// New connects a pool to the given database URL and returns a Storage
func New(ctx context.Context, databaseURL string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}

	return &Storage{db: pool}, nil
}

// NewWithDB creates a Storage with an existing connection (for testing)
func NewWithDB(db DB) *Storage {
	return &Storage{db: db}
}

// Close releases the underlying pool, if the Storage owns one
func (s *Storage) Close() {
	if pool, ok := s.db.(*pgxpool.Pool); ok {
		pool.Close()
	}
}

// Ensure Storage implements the interface
var _ store.Store = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	var (
		id        int64
		createdAt time.Time
	)
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, user.Name, user.Email, user.PasswordHash, string(user.Role)).
		Scan(&id, &createdAt)
	if isUniqueViolation(err) {
		return oops.Code("USER_EMAIL_EXISTS").
			With("email", user.Email).
			Wrap(model.ErrEmailExists)
	}
	if err != nil {
		return oops.Code("USER_CREATE_FAILED").
			With("email", user.Email).
			Wrap(err)
	}
	user.ID = model.UserID(id)
	user.CreatedAt = createdAt
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, password, role, created_at
		FROM users
		WHERE id = $1
	`, int64(id))

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", int64(id)).
			Wrap(model.ErrUserNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_FAILED").
			With("id", int64(id)).
			Wrap(err)
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, password, role, created_at
		FROM users
		WHERE email = $1
	`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("email", email).
			Wrap(model.ErrUserNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_EMAIL_FAILED").
			With("email", email).
			Wrap(err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		id   int64
		user model.User
		role string
	)
	err := row.Scan(&id, &user.Name, &user.Email, &user.PasswordHash, &role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.ID = model.UserID(id)
	user.Role = model.Role(role)
	return &user, nil
}

// Sport operations

func (s *Storage) CreateSport(ctx context.Context, sport *model.Sport) error {
	var (
		id        int64
		createdAt time.Time
	)
	err := s.db.QueryRow(ctx, `
		INSERT INTO sports (name)
		VALUES ($1)
		RETURNING id, created_at
	`, sport.Name).Scan(&id, &createdAt)
	if err != nil {
		return oops.Code("SPORT_CREATE_FAILED").
			With("name", sport.Name).
			Wrap(err)
	}
	sport.ID = model.SportID(id)
	sport.CreatedAt = createdAt
	return nil
}

func (s *Storage) ListSports(ctx context.Context) ([]model.Sport, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, created_at
		FROM sports
		ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("SPORT_LIST_FAILED").Wrap(err)
	}
	defer rows.Close()

	sports := make([]model.Sport, 0)
	for rows.Next() {
		var (
			id    int64
			sport model.Sport
		)
		if err := rows.Scan(&id, &sport.Name, &sport.CreatedAt); err != nil {
			return nil, oops.Code("SPORT_SCAN_FAILED").Wrap(err)
		}
		sport.ID = model.SportID(id)
		sports = append(sports, sport)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("SPORT_LIST_FAILED").Wrap(err)
	}
	return sports, nil
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	var (
		id        int64
		createdAt time.Time
	)
	err := s.db.QueryRow(ctx, `
		INSERT INTO sessions (sport_id, creator_id, team1, team2, additional_players, date, venue)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		int64(session.SportID),
		int64(session.CreatorID),
		session.Team1,
		session.Team2,
		session.AdditionalPlayers,
		session.Date,
		session.Venue,
	).Scan(&id, &createdAt)
	if isForeignKeyViolation(err) {
		return oops.Code("SESSION_INVALID_REFERENCE").
			With("sport_id", int64(session.SportID)).
			With("creator_id", int64(session.CreatorID)).
			Wrap(model.ErrInvalidReference)
	}
	if err != nil {
		return oops.Code("SESSION_CREATE_FAILED").Wrap(err)
	}
	session.ID = model.SessionID(id)
	session.CreatedAt = createdAt
	return nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	// Memberships go with the session via ON DELETE CASCADE.
	// Deleting an unknown id is a no-op.
	_, err := s.db.Exec(ctx, `
		DELETE FROM sessions WHERE id = $1
	`, int64(id))
	if err != nil {
		return oops.Code("SESSION_DELETE_FAILED").
			With("id", int64(id)).
			Wrap(err)
	}
	return nil
}

func (s *Storage) ListSessionDetails(ctx context.Context) ([]model.SessionDetail, error) {
	rows, err := s.db.Query(ctx, `
		SELECT sessions.id, sessions.sport_id, sessions.creator_id,
		       sessions.team1, sessions.team2, sessions.additional_players,
		       sessions.date, sessions.venue, sessions.created_at,
		       sports.name, users.name
		FROM sessions
		JOIN sports ON sessions.sport_id = sports.id
		JOIN users ON sessions.creator_id = users.id
		ORDER BY sessions.id
	`)
	if err != nil {
		return nil, oops.Code("SESSION_LIST_FAILED").Wrap(err)
	}
	defer rows.Close()

	details := make([]model.SessionDetail, 0)
	for rows.Next() {
		var (
			id, sportID, creatorID int64
			d                      model.SessionDetail
		)
		err := rows.Scan(
			&id, &sportID, &creatorID,
			&d.Team1, &d.Team2, &d.AdditionalPlayers,
			&d.Date, &d.Venue, &d.CreatedAt,
			&d.SportName, &d.CreatorName,
		)
		if err != nil {
			return nil, oops.Code("SESSION_SCAN_FAILED").Wrap(err)
		}
		d.ID = model.SessionID(id)
		d.SportID = model.SportID(sportID)
		d.CreatorID = model.UserID(creatorID)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("SESSION_LIST_FAILED").Wrap(err)
	}
	return details, nil
}

// Membership operations

func (s *Storage) AddSessionPlayer(ctx context.Context, sessionID model.SessionID, playerID model.UserID) (bool, error) {
	// Single atomic insert-if-absent; the primary key on
	// (session_id, player_id) decides new-vs-existing.
	tag, err := s.db.Exec(ctx, `
		INSERT INTO session_players (session_id, player_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, int64(sessionID), int64(playerID))
	if isForeignKeyViolation(err) {
		return false, oops.Code("MEMBERSHIP_INVALID_REFERENCE").
			With("session_id", int64(sessionID)).
			With("player_id", int64(playerID)).
			Wrap(model.ErrInvalidReference)
	}
	if err != nil {
		return false, oops.Code("MEMBERSHIP_CREATE_FAILED").
			With("session_id", int64(sessionID)).
			With("player_id", int64(playerID)).
			Wrap(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Storage) ListSessionPlayers(ctx context.Context, sessionID model.SessionID) ([]model.UserID, error) {
	rows, err := s.db.Query(ctx, `
		SELECT player_id
		FROM session_players
		WHERE session_id = $1
		ORDER BY player_id
	`, int64(sessionID))
	if err != nil {
		return nil, oops.Code("MEMBERSHIP_LIST_FAILED").
			With("session_id", int64(sessionID)).
			Wrap(err)
	}
	defer rows.Close()

	players := make([]model.UserID, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, oops.Code("MEMBERSHIP_SCAN_FAILED").Wrap(err)
		}
		players = append(players, model.UserID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("MEMBERSHIP_LIST_FAILED").Wrap(err)
	}
	return players, nil
}

// Reporting

func (s *Storage) SportPopularity(ctx context.Context) ([]model.SportPopularity, error) {
	// Sports with no sessions do not appear, per the inner join.
	rows, err := s.db.Query(ctx, `
		SELECT sports.name, COUNT(sessions.id)
		FROM sessions
		JOIN sports ON sessions.sport_id = sports.id
		GROUP BY sports.name
		ORDER BY sports.name
	`)
	if err != nil {
		return nil, oops.Code("POPULARITY_QUERY_FAILED").Wrap(err)
	}
	defer rows.Close()

	popularity := make([]model.SportPopularity, 0)
	for rows.Next() {
		var (
			p     model.SportPopularity
			count int64
		)
		if err := rows.Scan(&p.SportName, &count); err != nil {
			return nil, oops.Code("POPULARITY_SCAN_FAILED").Wrap(err)
		}
		p.SessionCount = int(count)
		popularity = append(popularity, p)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("POPULARITY_QUERY_FAILED").Wrap(err)
	}
	return popularity, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
