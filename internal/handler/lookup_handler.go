package handler

import (
	"net/http"
	"strings"

	"outbound_tool/internal/model"
	"outbound_tool/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// LookupHandler serves the typeahead/reference lookups. The handlers are
// pure reads, so they sit directly on the repositories.
type LookupHandler struct {
	lookups repository.LookupRepository
	users   repository.UserRepository
}

// NewLookupHandler creates a new LookupHandler
func NewLookupHandler(lookups repository.LookupRepository, users repository.UserRepository) *LookupHandler {
	return &LookupHandler{lookups: lookups, users: users}
}

func (h *LookupHandler) Clusters(c *gin.Context) {
	clusters, err := h.lookups.Clusters(c.Request.Context(), c.Query("region"), c.Query("query"))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up clusters")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clusters"})
		return
	}
	if clusters == nil {
		clusters = []model.ClusterLookup{}
	}
	c.JSON(http.StatusOK, clusters)
}

func (h *LookupHandler) Hubs(c *gin.Context) {
	hubs, err := h.lookups.Hubs(c.Request.Context(), c.Query("cluster"))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up hubs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve hubs"})
		return
	}
	if hubs == nil {
		hubs = []model.HubLookup{}
	}
	c.JSON(http.StatusOK, hubs)
}

func (h *LookupHandler) Processors(c *gin.Context) {
	processors, err := h.users.SearchProcessors(c.Request.Context(), c.Query("query"))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up processors")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve processors"})
		return
	}
	if processors == nil {
		processors = []model.ProcessorLookup{}
	}
	c.JSON(http.StatusOK, processors)
}

func (h *LookupHandler) LHTrip(c *gin.Context) {
	trip := c.Query("lhTrip")
	if trip == "" {
		trip = c.Query("lh_trip")
	}
	trip = strings.ToUpper(strings.TrimSpace(trip))
	if trip == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lhTrip is required"})
		return
	}

	row, err := h.lookups.LHTrip(c.Request.Context(), trip)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up lh trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"row": row})
}

// RegisterLookupRoutes registers lookup routes; all require a session
func (h *LookupHandler) RegisterLookupRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	lookupGroup := rg.Group("/lookup")
	lookupGroup.Use(authMW)
	{
		lookupGroup.GET("/clusters", h.Clusters)
		lookupGroup.GET("/hubs", h.Hubs)
		lookupGroup.GET("/processors", h.Processors)
		lookupGroup.GET("/lh-trip", h.LHTrip)
	}
}
