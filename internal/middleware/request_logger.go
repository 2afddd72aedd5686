package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type routeKey struct{}

// RouteFromContext returns the route name of the request this context
// belongs to, or "" outside a request scope.
func RouteFromContext(ctx context.Context) string {
	if route, ok := ctx.Value(routeKey{}).(string); ok {
		return route
	}
	return ""
}

// RequestLogger wraps every handler so that the route name is available
// to nested code through the request context, and exactly one structured
// log event (route, method, status, ms) is emitted per request. A handler
// panic is recovered, answered with 500, and logged as status 500.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		route := c.FullPath()
		if route == "" {
			// Unmatched request; log the raw path instead of a template.
			route = c.Request.URL.Path
		}

		ctx := context.WithValue(c.Request.Context(), routeKey{}, route)
		c.Request = c.Request.WithContext(ctx)

		defer func() {
			status := c.Writer.Status()
			if r := recover(); r != nil {
				status = http.StatusInternalServerError
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				} else {
					c.Abort()
				}
			}
			logger.Info().
				Str("type", "api.request").
				Str("route", route).
				Str("method", method).
				Int("status", status).
				Int64("ms", time.Since(start).Milliseconds()).
				Send()
		}()

		c.Next()
	}
}
