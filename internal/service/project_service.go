package service

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/repository"
)

// idAlphabet keeps generated identifiers URL- and filename-safe
const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// ProjectService handles business logic for survey projects
type ProjectService struct {
	projects *repository.ProjectRepository
	readings *repository.ReadingRepository
}

// NewProjectService creates a new project service
func NewProjectService(projects *repository.ProjectRepository, readings *repository.ReadingRepository) *ProjectService {
	return &ProjectService{projects: projects, readings: readings}
}

// CreateProject stores a new project with a generated identifier
func (s *ProjectService) CreateProject(req models.CreateProjectRequest) (*models.SurveyProject, error) {
	id, err := gonanoid.Generate(idAlphabet, 12)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project id: %w", err)
	}

	p := &models.SurveyProject{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.projects.InsertProject(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetAllProjects lists every project with reading counts
func (s *ProjectService) GetAllProjects() ([]models.SurveyProject, error) {
	return s.projects.GetAllProjects()
}

// GetProjectByID retrieves one project, nil when absent
func (s *ProjectService) GetProjectByID(id string) (*models.SurveyProject, error) {
	p, err := s.projects.GetProjectByID(id)
	if err != nil || p == nil {
		return p, err
	}

	count, err := s.readings.GetReadingCount(id)
	if err != nil {
		return nil, err
	}
	p.ReadingCount = int(count)
	return p, nil
}

// DeleteProject removes a project and its readings
func (s *ProjectService) DeleteProject(id string) error {
	return s.projects.DeleteProject(id)
}
