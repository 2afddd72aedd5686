package handler

import (
	"errors"
	"net/http"

	"outbound_tool/internal/middleware"
	"outbound_tool/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service  service.AuthService
	sessions service.SessionService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, sessions service.SessionService) *AuthHandler {
	return &AuthHandler{service: s, sessions: sessions}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		OpsID    string `json:"ops_id"`
		Password string `json:"password"`
	}
	// A malformed body is treated the same as an empty one and then
	// fails field validation.
	_ = c.ShouldBindJSON(&req)

	if req.OpsID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ops_id is required"})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.OpsID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDomainNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": "Email domain is not allowed"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		}
		return
	}

	middleware.SetSessionCookie(c, result.Session.ID, h.sessions.TTL())
	c.JSON(http.StatusOK, gin.H{
		"user":  result.User,
		"token": result.Token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID := middleware.SessionIDFromRequest(c); sessionID != "" {
		if err := h.service.Logout(c.Request.Context(), sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
			return
		}
	}
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.AuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		OpsID       string `json:"ops_id"`
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	_ = c.ShouldBindJSON(&req)

	if req.OpsID == "" || req.OldPassword == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ops_id, old_password, and new_password are required"})
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), req.OpsID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect old password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (h *AuthHandler) SeatalkSession(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	_ = c.ShouldBindJSON(&req)

	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	if err := h.service.RegisterSeatalkSession(c.Request.Context(), req.SessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) SeatalkCheck(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	session, err := h.service.CheckSeatalkSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check session"})
		return
	}
	if session == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":         session.Email,
		"authenticated": session.Authenticated,
	})
}

// RegisterAuthRoutes registers auth routes. Login, logout, change-password
// and the SeaTalk device handshake stay public; /me requires a session.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", authMW, h.Me)
		authGroup.POST("/change-password", h.ChangePassword)
		authGroup.POST("/seatalk/session", h.SeatalkSession)
		authGroup.GET("/seatalk/check", h.SeatalkCheck)
	}
}
