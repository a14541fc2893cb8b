package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/repository"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/service"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/pkg/response"
)

// ReadingHandler handles HTTP requests for stored magnetic readings
type ReadingHandler struct {
	readings *repository.ReadingRepository
	surveys  *service.SurveyService
}

// NewReadingHandler creates a new reading handler
func NewReadingHandler(readings *repository.ReadingRepository, surveys *service.SurveyService) *ReadingHandler {
	return &ReadingHandler{readings: readings, surveys: surveys}
}

// GetReadings handles GET /api/v1/readings
func (h *ReadingHandler) GetReadings(c *gin.Context) {
	var filter models.ReadingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	readings, total, err := h.readings.GetReadings(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	response.Success(c, models.ReadingsResponse{
		Data:       readings,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	})
}

// DeleteReading handles DELETE /api/v1/readings/:id
// Deleting goes through the survey service so an active session's coverage
// is recounted without the removed point.
func (h *ReadingHandler) DeleteReading(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid reading ID")
		return
	}

	if err := h.surveys.DeleteReading(id); err != nil {
		response.NotFound(c, "Reading not found")
		return
	}

	response.Success(c, nil)
}
