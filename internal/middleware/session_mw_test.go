package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"outbound_tool/internal/model"
	"outbound_tool/internal/service"
	"outbound_tool/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	sessions map[string]*model.User // session id -> user
	users    map[string]*model.User // ops_id -> user
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*service.LoginResult, error) {
	return nil, nil
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error { return nil }

func (s *stubAuthService) SessionUser(_ context.Context, sessionID string) (*model.User, error) {
	return s.sessions[sessionID], nil
}

func (s *stubAuthService) UserByOpsID(_ context.Context, opsID string) (*model.User, error) {
	return s.users[opsID], nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, _, _, _ string) error { return nil }

func (s *stubAuthService) RegisterSeatalkSession(_ context.Context, _ string) error { return nil }

func (s *stubAuthService) CheckSeatalkSession(_ context.Context, _ string) (*model.SeatalkSession, error) {
	return nil, nil
}

func newAuthTestRouter(auth service.AuthService, jwtUtil *utils.JWTUtil) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", SessionAuth(auth, jwtUtil), func(c *gin.Context) {
		user := AuthUser(c)
		c.JSON(http.StatusOK, gin.H{"ops_id": user.OpsID})
	})
	return router
}

func TestSessionAuth_NoCredentials(t *testing.T) {
	auth := &stubAuthService{sessions: map[string]*model.User{}, users: map[string]*model.User{}}
	router := newAuthTestRouter(auth, utils.NewJWTUtil("secret", 1))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestSessionAuth_ValidSessionCookie(t *testing.T) {
	user := &model.User{ID: 1, OpsID: "ops-1"}
	auth := &stubAuthService{
		sessions: map[string]*model.User{"good-session": user},
		users:    map[string]*model.User{},
	}
	router := newAuthTestRouter(auth, utils.NewJWTUtil("secret", 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good-session"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ops-1")
}

func TestSessionAuth_UnknownSessionCookie(t *testing.T) {
	auth := &stubAuthService{sessions: map[string]*model.User{}, users: map[string]*model.User{}}
	router := newAuthTestRouter(auth, utils.NewJWTUtil("secret", 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale-session"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_BearerTokenFallback(t *testing.T) {
	user := &model.User{ID: 1, OpsID: "ops-1", Role: "Processor"}
	auth := &stubAuthService{
		sessions: map[string]*model.User{},
		users:    map[string]*model.User{"ops-1": user},
	}
	jwtUtil := utils.NewJWTUtil("secret", 1)
	router := newAuthTestRouter(auth, jwtUtil)

	token, err := jwtUtil.GenerateToken("ops-1", "Processor")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ops-1")
}

func TestSessionAuth_InvalidBearerToken(t *testing.T) {
	auth := &stubAuthService{sessions: map[string]*model.User{}, users: map[string]*model.User{}}
	router := newAuthTestRouter(auth, utils.NewJWTUtil("secret", 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetAndClearSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	SetSessionCookie(c, "abc123", time.Hour)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, "abc123", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ClearSessionCookie(c)

	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}
