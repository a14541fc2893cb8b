package service

import (
	"fmt"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/repository"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/stats"
)

// StatsService computes field statistics over a project's readings
type StatsService struct {
	projects *repository.ProjectRepository
	readings *repository.ReadingRepository
}

// NewStatsService creates a new stats service
func NewStatsService(projects *repository.ProjectRepository, readings *repository.ReadingRepository) *StatsService {
	return &StatsService{projects: projects, readings: readings}
}

// FieldSummary summarizes the total-field distribution of one project
func (s *StatsService) FieldSummary(projectID string) (*stats.FieldSummary, error) {
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

	summary := stats.SummarizeField(readings)
	return &summary, nil
}
