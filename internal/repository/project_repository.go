package repository

import (
	"database/sql"
	"fmt"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
)

// ProjectRepository handles database operations for survey projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// InsertProject stores a new project
func (r *ProjectRepository) InsertProject(p *models.SurveyProject) error {
	query := `INSERT INTO projects (id, name, description, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.Exec(query, p.ID, p.Name, p.Description, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetAllProjects lists every project with its reading count, newest first
func (r *ProjectRepository) GetAllProjects() ([]models.SurveyProject, error) {
	query := `SELECT p.id, p.name, p.description, p.created_at, COUNT(m.id)
		FROM projects p
		LEFT JOIN magnetic_readings m ON m.project_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []models.SurveyProject
	for rows.Next() {
		var p models.SurveyProject
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.ReadingCount); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// GetProjectByID retrieves a single project
func (r *ProjectRepository) GetProjectByID(id string) (*models.SurveyProject, error) {
	query := `SELECT id, name, description, created_at FROM projects WHERE id = ?`

	var p models.SurveyProject
	err := r.db.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &p, nil
}

// DeleteProject removes a project; its readings cascade
func (r *ProjectRepository) DeleteProject(id string) error {
	result, err := r.db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
