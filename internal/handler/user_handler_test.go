package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"outbound_tool/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newUserRouter(users *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewUserHandler(users)
	h.RegisterUserRoutes(router.Group("/api"), func(c *gin.Context) { c.Next() })
	return router
}

func TestUserGetByIDHandler_InvalidID(t *testing.T) {
	router := newUserRouter(&stubUserRepo{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/id/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user ID")
}

func TestUserGetByIDHandler_NotFound(t *testing.T) {
	router := newUserRouter(&stubUserRepo{user: nil})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/id/42", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserGetByOpsIDHandler_Found(t *testing.T) {
	router := newUserRouter(&stubUserRepo{user: &model.User{ID: 1, OpsID: "ops-1", Name: "Alex"}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/ops/ops-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alex")
	assert.NotContains(t, w.Body.String(), "password_hash")
}
