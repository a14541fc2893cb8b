package service

import (
	"fmt"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/export"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/repository"
)

// ExportService assembles a project's data into GIS interchange formats
type ExportService struct {
	projects *repository.ProjectRepository
	readings *repository.ReadingRepository
	surveys  *SurveyService
}

// NewExportService creates a new export service
func NewExportService(projects *repository.ProjectRepository, readings *repository.ReadingRepository, surveys *SurveyService) *ExportService {
	return &ExportService{projects: projects, readings: readings, surveys: surveys}
}

// ExportResult carries the serialized payload plus download metadata
type ExportResult struct {
	Data     []byte
	Filename string
	MIMEType string
}

// ExportProject serializes a project's readings (and, when a session over
// this project is active, its grid cells) in the requested format. Failures
// leave survey state untouched.
func (s *ExportService) ExportProject(projectID string, format export.Format, notes string) (*ExportResult, error) {
	project, err := s.projects.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %q not found", projectID)
	}

	readings, err := s.readings.GetReadingsForProject(projectID)
	if err != nil {
		return nil, err
	}

	// Grid cells ride along only when the active session surveys this project
	var cells []models.GridCell
	if active, err := s.surveys.ActiveProjectID(); err == nil && active == projectID {
		if view, err := s.surveys.GridViewOfSession(); err == nil {
			cells = view.Cells
		}
	}

	data, err := export.Export(export.Bundle{
		Project:  project,
		Readings: readings,
		Cells:    cells,
		Notes:    notes,
	}, format)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Data:     data,
		Filename: project.Name + export.Extension(format),
		MIMEType: export.MIMEType(format),
	}, nil
}
