package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"outbound_tool/internal/middleware"
	"outbound_tool/internal/model"
	"outbound_tool/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	loginResult   *service.LoginResult
	loginErr      error
	loginCalled   bool
	changeErr     error
	seatalkResult *model.SeatalkSession
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*service.LoginResult, error) {
	s.loginCalled = true
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error { return nil }

func (s *stubAuthService) SessionUser(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}

func (s *stubAuthService) UserByOpsID(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, _, _, _ string) error {
	return s.changeErr
}

func (s *stubAuthService) RegisterSeatalkSession(_ context.Context, _ string) error { return nil }

func (s *stubAuthService) CheckSeatalkSession(_ context.Context, _ string) (*model.SeatalkSession, error) {
	return s.seatalkResult, nil
}

type stubSessionService struct{}

func (s *stubSessionService) Create(_ context.Context, opsID string) (*model.Session, error) {
	return &model.Session{ID: "sess", OpsID: opsID}, nil
}

func (s *stubSessionService) Get(_ context.Context, _ string) (*model.Session, error) {
	return nil, nil
}

func (s *stubSessionService) Delete(_ context.Context, _ string) error { return nil }

func (s *stubSessionService) TTL() time.Duration { return time.Hour }

func newAuthRouter(auth *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(auth, &stubSessionService{})
	h.RegisterAuthRoutes(router.Group("/api"), func(c *gin.Context) { c.Next() })
	return router
}

func TestLoginHandler_MissingOpsID(t *testing.T) {
	auth := &stubAuthService{}
	router := newAuthRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ops_id is required")
	assert.False(t, auth.loginCalled)
}

func TestLoginHandler_MalformedBody(t *testing.T) {
	auth := &stubAuthService{}
	router := newAuthRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ops_id is required")
}

func TestLoginHandler_DomainNotAllowed(t *testing.T) {
	auth := &stubAuthService{loginErr: service.ErrDomainNotAllowed}
	router := newAuthRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"ops_id":"x@gmail.com"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	auth := &stubAuthService{loginErr: service.ErrInvalidCredentials}
	router := newAuthRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"ops_id":"ops-1","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginHandler_SuccessSetsSessionCookie(t *testing.T) {
	auth := &stubAuthService{
		loginResult: &service.LoginResult{
			User:    &model.User{ID: 1, OpsID: "ops-1"},
			Session: &model.Session{ID: "sess-abc", OpsID: "ops-1"},
			Token:   "jwt-token",
		},
	}
	router := newAuthRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"ops_id":"ops-1","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jwt-token")
	assert.NotContains(t, w.Body.String(), "password_hash")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "sess-abc", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLogoutHandler_ClearsCookie(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-abc"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "success")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestChangePasswordHandler_MissingFields(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/change-password",
		strings.NewReader(`{"ops_id":"ops-1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePasswordHandler_UserNotFound(t *testing.T) {
	router := newAuthRouter(&stubAuthService{changeErr: service.ErrUserNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/change-password",
		strings.NewReader(`{"ops_id":"ops-404","old_password":"a","new_password":"b"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeatalkCheckHandler_UnconfirmedReturnsNull(t *testing.T) {
	router := newAuthRouter(&stubAuthService{seatalkResult: nil})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/seatalk/check?session_id=device-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestSeatalkSessionHandler_MissingSessionID(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/seatalk/session", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
