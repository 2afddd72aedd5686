package middleware

import (
	"net/http"
	"strings"
	"time"

	"outbound_tool/internal/model"
	"outbound_tool/internal/service"
	"outbound_tool/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the cookie carrying the opaque session token.
	SessionCookieName = "ops_session"

	// AuthUserKey is the gin context key holding the resolved *model.User.
	AuthUserKey = "authUser"
)

// SetSessionCookie attaches the session cookie to the response. HttpOnly
// keeps the token out of reach of client-side script.
func SetSessionCookie(c *gin.Context, sessionID string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, sessionID, int(ttl.Seconds()), "/", "", false, true)
}

// ClearSessionCookie removes the session cookie from the client
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// SessionIDFromRequest reads the session cookie, "" when absent
func SessionIDFromRequest(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return sessionID
}

// AuthUser returns the authenticated user placed in the context by
// SessionAuth, or nil on an unprotected route.
func AuthUser(c *gin.Context) *model.User {
	if v, exists := c.Get(AuthUserKey); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// SessionAuth rejects requests carrying no valid identity with a uniform
// 401. The session cookie is checked first; clients that cannot hold
// cookies may present the login bearer token instead.
func SessionAuth(authService service.AuthService, jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID := SessionIDFromRequest(c); sessionID != "" {
			user, err := authService.SessionUser(c.Request.Context(), sessionID)
			if err == nil && user != nil {
				c.Set(AuthUserKey, user)
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			claims, err := jwtUtil.ValidateToken(strings.TrimSpace(parts[1]))
			if err == nil {
				user, uerr := authService.UserByOpsID(c.Request.Context(), claims.OpsID)
				if uerr == nil && user != nil {
					c.Set(AuthUserKey, user)
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}
