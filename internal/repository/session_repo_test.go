package repository

import (
	"context"
	"testing"
	"time"

	"outbound_tool/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	session := &model.Session{
		ID:        "sess-1",
		OpsID:     "ops-1",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(session.ID, session.OpsID, session.ExpiresAt, session.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewSessionRepository(mock)
	assert.NoError(t, repo.Create(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Find(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT session_id, ops_id, expires_at, created_at FROM sessions WHERE session_id = \$1`).
		WithArgs("sess-1").
		WillReturnRows(pgxmock.NewRows([]string{"session_id", "ops_id", "expires_at", "created_at"}).
			AddRow("sess-1", "ops-1", now.Add(time.Hour), now))

	repo := NewSessionRepository(mock)
	session, err := repo.Find(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "ops-1", session.OpsID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Find_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT session_id, ops_id, expires_at, created_at FROM sessions WHERE session_id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"session_id", "ops_id", "expires_at", "created_at"}))

	repo := NewSessionRepository(mock)
	session, err := repo.Find(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, session)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM sessions WHERE session_id = \$1`).
		WithArgs("sess-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewSessionRepository(mock)
	assert.NoError(t, repo.Delete(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_UpsertSeatalk(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO seatalk_sessions`).
		WithArgs("device-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewSessionRepository(mock)
	assert.NoError(t, repo.UpsertSeatalk(context.Background(), "device-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_FindAuthenticatedSeatalk(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	email := "a@spxexpress.com"
	mock.ExpectQuery(`SELECT email, authenticated`).
		WithArgs("device-1").
		WillReturnRows(pgxmock.NewRows([]string{"email", "authenticated"}).AddRow(&email, true))

	repo := NewSessionRepository(mock)
	s, err := repo.FindAuthenticatedSeatalk(context.Background(), "device-1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "device-1", s.SessionID)
	assert.True(t, s.Authenticated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_FindAuthenticatedSeatalk_Unconfirmed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT email, authenticated`).
		WithArgs("device-1").
		WillReturnRows(pgxmock.NewRows([]string{"email", "authenticated"}))

	repo := NewSessionRepository(mock)
	s, err := repo.FindAuthenticatedSeatalk(context.Background(), "device-1")
	assert.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}
