package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outbound_tool/internal/model"
	"outbound_tool/internal/repository"
	"outbound_tool/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDomainNotAllowed   = errors.New("email domain is not allowed")
	ErrUserNotFound       = errors.New("user not found")
)

// LoginResult carries everything the login endpoint returns: the user, the
// cookie session, and a bearer token for clients that cannot hold cookies.
type LoginResult struct {
	User    *model.User
	Session *model.Session
	Token   string
}

// AuthService provides authentication related services
type AuthService interface {
	Login(ctx context.Context, opsID, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	SessionUser(ctx context.Context, sessionID string) (*model.User, error)
	UserByOpsID(ctx context.Context, opsID string) (*model.User, error)
	ChangePassword(ctx context.Context, opsID, oldPassword, newPassword string) error
	RegisterSeatalkSession(ctx context.Context, sessionID string) error
	CheckSeatalkSession(ctx context.Context, sessionID string) (*model.SeatalkSession, error)
}

type authService struct {
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	sessions       SessionService
	jwtUtil        *utils.JWTUtil
	allowedDomains []string
}

// NewAuthService creates a new AuthService. allowedDomains is the set of
// email domains permitted to authenticate, lower-cased.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, sessions SessionService, jwtUtil *utils.JWTUtil, allowedDomains []string) AuthService {
	normalized := make([]string, 0, len(allowedDomains))
	for _, d := range allowedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			normalized = append(normalized, d)
		}
	}
	return &authService{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		sessions:       sessions,
		jwtUtil:        jwtUtil,
		allowedDomains: normalized,
	}
}

func (s *authService) isAllowedDomain(value string) bool {
	parts := strings.SplitN(value, "@", 2)
	if len(parts) != 2 || parts[1] == "" {
		return false
	}
	domain := strings.ToLower(parts[1])
	for _, allowed := range s.allowedDomains {
		if domain == allowed {
			return true
		}
	}
	return false
}

// Login authenticates an identifier (ops_id or email) plus optional
// password and issues both a session and a bearer token.
func (s *authService) Login(ctx context.Context, opsID, password string) (*LoginResult, error) {
	if strings.Contains(opsID, "@") && !s.isAllowedDomain(opsID) {
		return nil, ErrDomainNotAllowed
	}

	user, err := s.userRepo.FindByIdentifier(ctx, opsID)
	if err != nil {
		return nil, fmt.Errorf("error finding user by identifier: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if user.Email != nil && *user.Email != "" && !s.isAllowedDomain(*user.Email) {
		return nil, ErrDomainNotAllowed
	}

	// Accounts seeded without a password hash authenticate on identifier
	// alone; they are expected to set a password via change-password.
	if user.HasPassword() && !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.OpsID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.OpsID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{User: user, Session: session, Token: token}, nil
}

// Logout removes the session; safe to call with an unknown id
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// SessionUser resolves a session identifier to its user. Returns nil, nil
// for a missing, expired or unknown session and for a session whose user
// has since been removed.
func (s *authService) SessionUser(ctx context.Context, sessionID string) (*model.User, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return s.userRepo.FindByOpsID(ctx, session.OpsID)
}

// UserByOpsID exposes user lookup for the bearer-token path of the auth gate
func (s *authService) UserByOpsID(ctx context.Context, opsID string) (*model.User, error) {
	return s.userRepo.FindByOpsID(ctx, opsID)
}

// ChangePassword verifies the old password (when one is set) and stores a
// new hash, ending the first-login flow.
func (s *authService) ChangePassword(ctx context.Context, opsID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByOpsID(ctx, opsID)
	if err != nil {
		return fmt.Errorf("error finding user for password change: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.HasPassword() && !utils.CheckPasswordHash(oldPassword, *user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, opsID, hash); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}
	return nil
}

// RegisterSeatalkSession records a device session pending confirmation
func (s *authService) RegisterSeatalkSession(ctx context.Context, sessionID string) error {
	return s.sessionRepo.UpsertSeatalk(ctx, sessionID)
}

// CheckSeatalkSession returns the device session once confirmed, else nil
func (s *authService) CheckSeatalkSession(ctx context.Context, sessionID string) (*model.SeatalkSession, error) {
	return s.sessionRepo.FindAuthenticatedSeatalk(ctx, sessionID)
}
