package service

import (
	"context"
	"fmt"
	"time"

	"outbound_tool/internal/model"
	"outbound_tool/internal/repository"

	"github.com/google/uuid"
)

// SessionService manages the lifecycle of opaque session tokens
type SessionService interface {
	Create(ctx context.Context, opsID string) (*model.Session, error)
	Get(ctx context.Context, sessionID string) (*model.Session, error)
	Delete(ctx context.Context, sessionID string) error
	TTL() time.Duration
}

type sessionService struct {
	repo repository.SessionRepository
	ttl  time.Duration
}

// NewSessionService creates a new SessionService
func NewSessionService(repo repository.SessionRepository, ttl time.Duration) SessionService {
	return &sessionService{repo: repo, ttl: ttl}
}

// Create generates a random opaque token and persists it. The identifier
// space is large enough that collisions are not handled; an insert failure
// propagates to the caller.
func (s *sessionService) Create(ctx context.Context, opsID string) (*model.Session, error) {
	now := time.Now()
	session := &model.Session{
		ID:        uuid.NewString(),
		OpsID:     opsID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Get resolves a session identifier. Absent, unknown, and expired sessions
// all yield nil without an error; "no session" is an expected condition.
func (s *sessionService) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	session, err := s.repo.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired(time.Now()) {
		return nil, nil
	}
	return session, nil
}

// Delete removes a session; idempotent
func (s *sessionService) Delete(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

// TTL returns the configured session lifetime
func (s *sessionService) TTL() time.Duration {
	return s.ttl
}
