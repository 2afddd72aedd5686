package handler

import (
	"net/http"
	"strconv"

	"outbound_tool/internal/model"
	"outbound_tool/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// DispatchHandler handles dispatch report requests
type DispatchHandler struct {
	service service.DispatchService
}

// NewDispatchHandler creates a new DispatchHandler
func NewDispatchHandler(s service.DispatchService) *DispatchHandler {
	return &DispatchHandler{service: s}
}

func (h *DispatchHandler) List(c *gin.Context) {
	var filters model.DispatchFilters
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}
	if region := c.Query("region"); region != "" {
		filters.Region = &region
	}
	if startDate := c.Query("startDate"); startDate != "" {
		filters.StartDate = &startDate
	}
	if endDate := c.Query("endDate"); endDate != "" {
		filters.EndDate = &endDate
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
		log.Error().Err(err).Msg("failed to list dispatch reports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dispatch reports"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *DispatchHandler) Submit(c *gin.Context) {
	var req model.SubmitDispatchRequest
	_ = c.ShouldBindJSON(&req)

	if req.SubmittedByOpsID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submitted_by_ops_id is required"})
		return
	}
	if len(req.Rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rows are required"})
		return
	}

	created, err := h.service.Submit(c.Request.Context(), req.SubmittedByOpsID, req.Rows)
	if err != nil {
		log.Error().Err(err).Msg("failed to submit dispatch batch")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit dispatch reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"created_count": created})
}

func (h *DispatchHandler) Verify(c *gin.Context) {
	var req model.VerifyDispatchRequest
	_ = c.ShouldBindJSON(&req)

	if req.VerifiedByOpsID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "verified_by_ops_id is required"})
		return
	}
	if len(req.Rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rows are required"})
		return
	}

	results, err := h.service.Verify(c.Request.Context(), req.VerifiedByOpsID, req.Rows)
	if err != nil {
		log.Error().Err(err).Msg("failed to verify dispatch batch")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify dispatch reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// RegisterDispatchRoutes registers dispatch routes; all require a session
func (h *DispatchHandler) RegisterDispatchRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	dispatchGroup := rg.Group("/dispatch")
	dispatchGroup.Use(authMW)
	{
		dispatchGroup.GET("", h.List)
		dispatchGroup.POST("/submit", h.Submit)
		dispatchGroup.POST("/verify", h.Verify)
	}
}
