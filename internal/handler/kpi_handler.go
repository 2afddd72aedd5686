package handler

import (
	"net/http"

	"outbound_tool/internal/model"
	"outbound_tool/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// KPIHandler serves the read-only reporting views
type KPIHandler struct {
	kpi repository.KPIRepository
}

// NewKPIHandler creates a new KPIHandler
func NewKPIHandler(kpi repository.KPIRepository) *KPIHandler {
	return &KPIHandler{kpi: kpi}
}

func (h *KPIHandler) Mdt(c *gin.Context) {
	rows, err := h.kpi.Mdt(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		log.Error().Err(err).Msg("failed to query kpi mdt")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve KPI data"})
		return
	}
	if rows == nil {
		rows = []model.KPIMdtRow{}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *KPIHandler) Intraday(c *gin.Context) {
	rows, err := h.kpi.Intraday(c.Request.Context(), c.Query("date"))
	if err != nil {
		log.Error().Err(err).Msg("failed to query kpi intraday")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve KPI data"})
		return
	}
	if rows == nil {
		rows = []model.KPIIntradayRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// RegisterKPIRoutes registers KPI routes; all require a session
func (h *KPIHandler) RegisterKPIRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	kpiGroup := rg.Group("/kpi")
	kpiGroup.Use(authMW)
	{
		kpiGroup.GET("/mdt", h.Mdt)
		kpiGroup.GET("/intraday", h.Intraday)
	}
}
