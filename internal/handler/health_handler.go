package handler

import (
	"net/http"
	"time"

	"outbound_tool/internal/repository"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus a database round-trip
type HealthHandler struct {
	db         repository.DB
	appName    string
	appVersion string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db repository.DB, appName, appVersion string) *HealthHandler {
	return &HealthHandler{db: db, appName: appName, appVersion: appVersion}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"db":     err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"app":       h.appName,
		"version":   h.appVersion,
	})
}

// RegisterHealthRoutes registers the public health route
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}
