package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/service"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/pkg/response"
)

// StatsHandler handles HTTP requests for field statistics
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetFieldSummary handles GET /api/v1/stats/:projectId/field
func (h *StatsHandler) GetFieldSummary(c *gin.Context) {
	summary, err := h.service.FieldSummary(c.Param("projectId"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, summary)
}
