package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/export"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/service"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/pkg/response"
)

// ExportHandler handles HTTP requests for GIS exports
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(service *service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// GetFormats handles GET /api/v1/export/formats
func (h *ExportHandler) GetFormats(c *gin.Context) {
	formats := export.Formats()

	type formatEntry struct {
		Format    string `json:"format"`
		Extension string `json:"extension"`
		MIMEType  string `json:"mime_type"`
	}

	entries := make([]formatEntry, 0, len(formats))
	for _, f := range formats {
		entries = append(entries, formatEntry{
			Format:    string(f),
			Extension: export.Extension(f),
			MIMEType:  export.MIMEType(f),
		})
	}

	response.Success(c, entries)
}

// ExportProject handles GET /api/v1/export/:projectId?format=csv&notes=...
// The serialized survey is returned as a file download.
func (h *ExportHandler) ExportProject(c *gin.Context) {
	format := export.Format(c.DefaultQuery("format", string(export.FormatCSV)))
	notes := c.Query("notes")

	result, err := h.service.ExportProject(c.Param("projectId"), format, notes)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.MIMEType, result.Data)
}
