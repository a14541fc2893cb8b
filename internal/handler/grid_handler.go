package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/service"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/pkg/response"
)

// GridHandler handles HTTP requests for survey grids
type GridHandler struct {
	service *service.SurveyService
}

// NewGridHandler creates a new grid handler
func NewGridHandler(service *service.SurveyService) *GridHandler {
	return &GridHandler{service: service}
}

// BuildGrid handles POST /api/v1/grids
func (h *GridHandler) BuildGrid(c *gin.Context) {
	var req models.BuildGridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid grid payload")
		return
	}

	gf, view, err := h.service.BuildGrid(req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"grid": gf,
		"view": view,
	})
}

// GetGrids handles GET /api/v1/grids
func (h *GridHandler) GetGrids(c *gin.Context) {
	files, err := h.service.ListGridFiles()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  files,
		"count": len(files),
	})
}

// DeleteGrid handles DELETE /api/v1/grids/:name
func (h *GridHandler) DeleteGrid(c *gin.Context) {
	if err := h.service.DeleteGridFile(c.Param("name")); err != nil {
		response.NotFound(c, "Grid not found")
		return
	}

	response.Success(c, nil)
}
