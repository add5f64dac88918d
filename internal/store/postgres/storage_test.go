package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsday/sportsday/internal/model"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)
	return mock
}

func TestStorage_CreateUser(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).
					AddRow(int64(1), now)
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Alice", "alice@example.com", "hash", "player").
					WillReturnRows(rows)
			},
		},
		{
			name: "duplicate email",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Alice", "alice@example.com", "hash", "player").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: model.ErrEmailExists,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Alice", "alice@example.com", "hash", "player").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setupMock(mock)

			storage := NewWithDB(mock)
			user := &model.User{
				Name:         "Alice",
				Email:        "alice@example.com",
				PasswordHash: "hash",
				Role:         model.RolePlayer,
			}
			err := storage.CreateUser(context.Background(), user)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, model.ErrEmailExists) {
					assert.ErrorIs(t, err, model.ErrEmailExists)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.UserID(1), user.ID)
				assert.Equal(t, now, user.CreatedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStorage_GetUserByEmail(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      *model.User
		wantErr   error
	}{
		{
			name: "user found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "email", "password", "role", "created_at"}).
					AddRow(int64(7), "Alice", "alice@example.com", "hash", "admin", now)
				mock.ExpectQuery(`SELECT id, name, email, password, role, created_at`).
					WithArgs("alice@example.com").
					WillReturnRows(rows)
			},
			want: &model.User{
				ID:           7,
				Name:         "Alice",
				Email:        "alice@example.com",
				PasswordHash: "hash",
				Role:         model.RoleAdmin,
				CreatedAt:    now,
			},
		},
		{
			name: "user not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, email, password, role, created_at`).
					WithArgs("alice@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: model.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setupMock(mock)

			storage := NewWithDB(mock)
			got, err := storage.GetUserByEmail(context.Background(), "alice@example.com")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStorage_GetUser(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, name, email, password, role, created_at`).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	storage := NewWithDB(mock)
	_, err := storage.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_CreateSport(t *testing.T) {
	now := time.Now()

	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO sports`).
		WithArgs("Football").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	storage := NewWithDB(mock)
	sport := &model.Sport{Name: "Football"}
	require.NoError(t, storage.CreateSport(context.Background(), sport))
	assert.Equal(t, model.SportID(3), sport.ID)
	assert.Equal(t, now, sport.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ListSports(t *testing.T) {
	now := time.Now()

	mock := newMock(t)
	rows := pgxmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow(int64(1), "Football", now).
		AddRow(int64(2), "Cricket", now)
	mock.ExpectQuery(`SELECT id, name, created_at`).
		WillReturnRows(rows)

	storage := NewWithDB(mock)
	sports, err := storage.ListSports(context.Background())
	require.NoError(t, err)
	require.Len(t, sports, 2)
	assert.Equal(t, model.SportID(1), sports[0].ID)
	assert.Equal(t, "Football", sports[0].Name)
	assert.Equal(t, "Cricket", sports[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_CreateSession(t *testing.T) {
	now := time.Now()
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).
					AddRow(int64(5), now)
				mock.ExpectQuery(`INSERT INTO sessions`).
					WithArgs(int64(1), int64(2), "Reds", "Blues", "Charlie", date, "Main Oval").
					WillReturnRows(rows)
			},
		},
		{
			name: "unknown sport or creator",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO sessions`).
					WithArgs(int64(1), int64(2), "Reds", "Blues", "Charlie", date, "Main Oval").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
			},
			wantErr: model.ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setupMock(mock)

			storage := NewWithDB(mock)
			session := &model.Session{
				SportID:           1,
				CreatorID:         2,
				Team1:             "Reds",
				Team2:             "Blues",
				AdditionalPlayers: "Charlie",
				Date:              date,
				Venue:             "Main Oval",
			}
			err := storage.CreateSession(context.Background(), session)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.SessionID(5), session.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStorage_DeleteSession(t *testing.T) {
	t.Run("existing session", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM sessions`).
			WithArgs(int64(5)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		storage := NewWithDB(mock)
		require.NoError(t, storage.DeleteSession(context.Background(), 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown session is a no-op", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM sessions`).
			WithArgs(int64(999)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		storage := NewWithDB(mock)
		require.NoError(t, storage.DeleteSession(context.Background(), 999))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStorage_ListSessionDetails(t *testing.T) {
	now := time.Now()
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	mock := newMock(t)
	rows := pgxmock.NewRows([]string{
		"id", "sport_id", "creator_id", "team1", "team2",
		"additional_players", "date", "venue", "created_at",
		"sport_name", "creator_name",
	}).AddRow(
		int64(5), int64(1), int64(2), "Reds", "Blues",
		"", date, "Main Oval", now,
		"Football", "Alice",
	)
	mock.ExpectQuery(`FROM sessions`).WillReturnRows(rows)

	storage := NewWithDB(mock)
	details, err := storage.ListSessionDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, model.SessionID(5), details[0].ID)
	assert.Equal(t, model.SportID(1), details[0].SportID)
	assert.Equal(t, model.UserID(2), details[0].CreatorID)
	assert.Equal(t, "Football", details[0].SportName)
	assert.Equal(t, "Alice", details[0].CreatorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_AddSessionPlayer(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      bool
		wantErr   error
	}{
		{
			name: "new membership",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO session_players`).
					WithArgs(int64(5), int64(2)).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			want: true,
		},
		{
			name: "already joined",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO session_players`).
					WithArgs(int64(5), int64(2)).
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
			want: false,
		},
		{
			name: "unknown session",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO session_players`).
					WithArgs(int64(5), int64(2)).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
			},
			wantErr: model.ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setupMock(mock)

			storage := NewWithDB(mock)
			added, err := storage.AddSessionPlayer(context.Background(), 5, 2)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, added)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestStorage_ListSessionPlayers(t *testing.T) {
	mock := newMock(t)
	rows := pgxmock.NewRows([]string{"player_id"}).
		AddRow(int64(2)).
		AddRow(int64(4))
	mock.ExpectQuery(`SELECT player_id`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	storage := NewWithDB(mock)
	players, err := storage.ListSessionPlayers(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []model.UserID{2, 4}, players)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_SportPopularity(t *testing.T) {
	mock := newMock(t)
	rows := pgxmock.NewRows([]string{"name", "count"}).
		AddRow("Cricket", int64(1)).
		AddRow("Football", int64(2))
	mock.ExpectQuery(`GROUP BY sports.name`).WillReturnRows(rows)

	storage := NewWithDB(mock)
	popularity, err := storage.SportPopularity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.SportPopularity{
		{SportName: "Cricket", SessionCount: 1},
		{SportName: "Football", SessionCount: 2},
	}, popularity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
