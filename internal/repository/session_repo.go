package repository

import (
	"context"
	"errors"
	"fmt"

	"outbound_tool/internal/model"

	"github.com/jackc/pgx/v5"
)

// SessionRepository defines operations for session data
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	Find(ctx context.Context, sessionID string) (*model.Session, error)
	Delete(ctx context.Context, sessionID string) error
	UpsertSeatalk(ctx context.Context, sessionID string) error
	FindAuthenticatedSeatalk(ctx context.Context, sessionID string) (*model.SeatalkSession, error)
}

type sessionRepository struct {
	db DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a new session row
func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	sql := `INSERT INTO sessions (session_id, ops_id, expires_at, created_at)
            VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, sql, session.ID, session.OpsID, session.ExpiresAt, session.CreatedAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Find retrieves a session by its identifier. A missing session is not an
// error; expiry is the caller's concern.
func (r *sessionRepository) Find(ctx context.Context, sessionID string) (*model.Session, error) {
	session := &model.Session{}
	sql := `SELECT session_id, ops_id, expires_at, created_at FROM sessions WHERE session_id = $1`
	err := r.db.QueryRow(ctx, sql, sessionID).Scan(&session.ID, &session.OpsID, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

// Delete removes a session row; deleting a non-existent session is not an error
func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	sql := `DELETE FROM sessions WHERE session_id = $1`
	if _, err := r.db.Exec(ctx, sql, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// UpsertSeatalk registers a device session, resetting it to unauthenticated
func (r *sessionRepository) UpsertSeatalk(ctx context.Context, sessionID string) error {
	sql := `INSERT INTO seatalk_sessions (session_id, authenticated)
            VALUES ($1, false)
            ON CONFLICT (session_id)
            DO UPDATE SET authenticated = false`
	if _, err := r.db.Exec(ctx, sql, sessionID); err != nil {
		return fmt.Errorf("failed to upsert seatalk session: %w", err)
	}
	return nil
}

// FindAuthenticatedSeatalk returns a device session only once it has been
// confirmed out of band
func (r *sessionRepository) FindAuthenticatedSeatalk(ctx context.Context, sessionID string) (*model.SeatalkSession, error) {
	s := &model.SeatalkSession{SessionID: sessionID}
	sql := `SELECT email, authenticated
            FROM seatalk_sessions
            WHERE session_id = $1 AND authenticated = true
            LIMIT 1`
	err := r.db.QueryRow(ctx, sql, sessionID).Scan(&s.Email, &s.Authenticated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find seatalk session: %w", err)
	}
	return s, nil
}
