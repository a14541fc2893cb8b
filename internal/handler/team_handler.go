package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/team"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/pkg/response"
)

// TeamHandler handles HTTP requests for team member positions
type TeamHandler struct {
	store *team.Store
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(store *team.Store) *TeamHandler {
	return &TeamHandler{store: store}
}

// UpdatePosition handles POST /api/v1/team/position
func (h *TeamHandler) UpdatePosition(c *gin.Context) {
	var m models.TeamMember
	if err := c.ShouldBindJSON(&m); err != nil || m.DeviceID == "" {
		response.BadRequest(c, "Invalid team position payload")
		return
	}

	if err := h.store.UpdatePosition(c.Request.Context(), m); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, nil)
}

// GetMembers handles GET /api/v1/team/members?exclude=deviceId
func (h *TeamHandler) GetMembers(c *gin.Context) {
	members := h.store.Members(c.Query("exclude"))
	response.Success(c, gin.H{
		"data":  members,
		"count": len(members),
	})
}

// GetNearby handles GET /api/v1/team/nearby?lat=..&lon=..&radius=..
func (h *TeamHandler) GetNearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		response.BadRequest(c, "Invalid lat/lon parameters")
		return
	}

	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "500"), 64)
	if err != nil || radius <= 0 {
		response.BadRequest(c, "Invalid radius parameter")
		return
	}

	members, err := h.store.Nearby(c.Request.Context(), lat, lon, radius)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  members,
		"count": len(members),
	})
}

// RemoveMember handles DELETE /api/v1/team/members/:deviceId
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	if err := h.store.Remove(c.Request.Context(), c.Param("deviceId")); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, nil)
}
