package handler

import (
	"net/http"
	"strconv"

	"outbound_tool/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// UserHandler serves user profile reads
type UserHandler struct {
	users repository.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by id")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetByOpsID(c *gin.Context) {
	user, err := h.users.FindByOpsID(c.Request.Context(), c.Param("ops_id"))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by ops_id")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// RegisterUserRoutes registers user routes; all require a session.
// The numeric and ops_id lookups sit under distinct static prefixes so
// the router never has to disambiguate a wildcard against "ops".
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	userGroup := rg.Group("/users")
	userGroup.Use(authMW)
	{
		userGroup.GET("/id/:id", h.GetByID)
		userGroup.GET("/ops/:ops_id", h.GetByOpsID)
	}
}
