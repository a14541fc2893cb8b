package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/service"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/survey"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/pkg/response"
)

// SurveyHandler handles HTTP requests for the active survey session
type SurveyHandler struct {
	service *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(service *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{service: service}
}

type startSessionRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	GridName  string `json:"grid_name" binding:"required"`
}

// StartSession handles POST /api/v1/survey/session
func (h *SurveyHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid session payload")
		return
	}

	view, err := h.service.StartSession(req.ProjectID, req.GridName)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, view)
}

// EndSession handles DELETE /api/v1/survey/session
func (h *SurveyHandler) EndSession(c *gin.Context) {
	if err := h.service.EndSession(); err != nil {
		response.NotFound(c, err.Error())
		return
	}
	response.Success(c, nil)
}

type sensorUpdateRequest struct {
	Position *models.Position      `json:"position"` // null when GPS is lost
	Snapshot models.SensorSnapshot `json:"snapshot"`
}

// UpdateSensors handles POST /api/v1/survey/sensors
func (h *SurveyHandler) UpdateSensors(c *gin.Context) {
	var req sensorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid sensor payload")
		return
	}

	if err := h.service.UpdateSensors(req.Position, req.Snapshot); err != nil {
		surveyError(c, err)
		return
	}

	response.Success(c, nil)
}

// SetCalibration handles PUT /api/v1/survey/calibration
func (h *SurveyHandler) SetCalibration(c *gin.Context) {
	var cal models.Calibration
	if err := c.ShouldBindJSON(&cal); err != nil {
		response.BadRequest(c, "Invalid calibration payload")
		return
	}

	if err := h.service.SetCalibration(cal); err != nil {
		surveyError(c, err)
		return
	}

	response.Success(c, nil)
}

type recordRequest struct {
	Note string `json:"note"`
}

// Record handles POST /api/v1/survey/readings (manual collection)
func (h *SurveyHandler) Record(c *gin.Context) {
	var req recordRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid record payload")
			return
		}
	}

	reading, err := h.service.Record(req.Note)
	if err != nil {
		// The reading survives in the session buffer on a storage failure
		if errors.Is(err, survey.ErrPersistence) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": err.Error(),
				"data":    reading,
			})
			return
		}
		surveyError(c, err)
		return
	}

	response.Success(c, reading)
}

type autoCollectRequest struct {
	IntervalSeconds int `json:"interval_seconds"`
}

// StartAutoCollect handles POST /api/v1/survey/auto-collect
func (h *SurveyHandler) StartAutoCollect(c *gin.Context) {
	var req autoCollectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid auto-collect payload")
			return
		}
	}

	if err := h.service.StartAutoCollect(time.Duration(req.IntervalSeconds) * time.Second); err != nil {
		surveyError(c, err)
		return
	}

	response.Success(c, nil)
}

// StopAutoCollect handles DELETE /api/v1/survey/auto-collect
func (h *SurveyHandler) StopAutoCollect(c *gin.Context) {
	if err := h.service.StopAutoCollect(); err != nil {
		surveyError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetCoverage handles GET /api/v1/survey/coverage
func (h *SurveyHandler) GetCoverage(c *gin.Context) {
	snap, err := h.service.Coverage()
	if err != nil {
		surveyError(c, err)
		return
	}
	response.Success(c, snap)
}

// GetGrid handles GET /api/v1/survey/grid
func (h *SurveyHandler) GetGrid(c *gin.Context) {
	view, err := h.service.GridViewOfSession()
	if err != nil {
		surveyError(c, err)
		return
	}
	response.Success(c, view)
}

// GetNextTarget handles GET /api/v1/survey/next-target
func (h *SurveyHandler) GetNextTarget(c *gin.Context) {
	distance, bearing, ok, err := h.service.NextTarget()
	if err != nil {
		surveyError(c, err)
		return
	}

	if !ok {
		response.Success(c, gin.H{"available": false})
		return
	}
	response.Success(c, gin.H{
		"available":       true,
		"distance_meters": distance,
		"bearing_degrees": bearing,
	})
}

// GetSessionReadings handles GET /api/v1/survey/readings
func (h *SurveyHandler) GetSessionReadings(c *gin.Context) {
	readings, err := h.service.SessionReadings()
	if err != nil {
		surveyError(c, err)
		return
	}
	response.Success(c, gin.H{
		"data":  readings,
		"count": len(readings),
	})
}

// surveyError maps collection errors onto HTTP statuses. All of them are
// recoverable notices, never fatal to the running session.
func surveyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoSession):
		response.NotFound(c, err.Error())
	case errors.Is(err, survey.ErrNoPosition), errors.Is(err, survey.ErrNotCalibrated):
		response.Error(c, http.StatusConflict, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
