package handler

import (
	"errors"
	"net/http"
	"strconv"

	"outbound_tool/internal/model"
	"outbound_tool/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HubHandler handles outbound_map reference data requests
type HubHandler struct {
	service service.HubService
}

// NewHubHandler creates a new HubHandler
func NewHubHandler(s service.HubService) *HubHandler {
	return &HubHandler{service: s}
}

func (h *HubHandler) List(c *gin.Context) {
	var filters model.HubFilters
	if activeParam := c.Query("active"); activeParam != "" {
		active := activeParam == "true"
		filters.Active = &active
	}

	filters.Limit = 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filters.Offset = offset
		}
	}

	page, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		log.Error().Err(err).Msg("failed to list hubs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve hubs"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func hubErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoHubFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "hub data is required"})
	case errors.Is(err, service.ErrUnknownHubField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrHubNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Hub not found"})
	default:
		log.Error().Err(err).Msg("hub operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hub operation failed"})
	}
}

func (h *HubHandler) Create(c *gin.Context) {
	var fields map[string]any
	_ = c.ShouldBindJSON(&fields)

	hub, err := h.service.Create(c.Request.Context(), fields)
	if err != nil {
		hubErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, hub)
}

func (h *HubHandler) Update(c *gin.Context) {
	var fields map[string]any
	_ = c.ShouldBindJSON(&fields)

	hub, err := h.service.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		hubErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, hub)
}

func (h *HubHandler) Delete(c *gin.Context) {
	hub, err := h.service.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		hubErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, hub)
}

// RegisterHubRoutes registers hub routes; all require a session
func (h *HubHandler) RegisterHubRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	hubGroup := rg.Group("/hubs")
	hubGroup.Use(authMW)
	{
		hubGroup.GET("", h.List)
		hubGroup.POST("", h.Create)
		hubGroup.PATCH("/:id", h.Update)
		hubGroup.DELETE("/:id", h.Delete)
	}
}
