package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/service"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/pkg/response"
)

// ProjectHandler handles HTTP requests for survey projects
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProject handles POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid project payload")
		return
	}

	project, err := h.service.CreateProject(req)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, project)
}

// GetProjects handles GET /api/v1/projects
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.service.GetAllProjects()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  projects,
		"count": len(projects),
	})
}

// GetProjectByID handles GET /api/v1/projects/:id
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	project, err := h.service.GetProjectByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if project == nil {
		response.NotFound(c, "Project not found")
		return
	}

	response.Success(c, project)
}

// DeleteProject handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.service.DeleteProject(c.Param("id")); err != nil {
		response.NotFound(c, "Project not found")
		return
	}

	response.Success(c, nil)
}
