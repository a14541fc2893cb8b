package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
)

// GridFileRepository persists grid interchange records as JSON blobs keyed
// by name, so a grid can be reused across sessions and devices
type GridFileRepository struct {
	db *sql.DB
}

// NewGridFileRepository creates a new grid file repository
func NewGridFileRepository(db *sql.DB) *GridFileRepository {
	return &GridFileRepository{db: db}
}

// SaveGridFile inserts or replaces a grid record
func (r *GridFileRepository) SaveGridFile(gf *models.GridFile) error {
	data, err := json.Marshal(gf)
	if err != nil {
		return fmt.Errorf("failed to encode grid file: %w", err)
	}

	_, err = r.db.Exec(
		"INSERT INTO grid_files (name, data) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET data = excluded.data",
		gf.Name, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save grid file: %w", err)
	}
	return nil
}

// GetGridFile loads a grid record by name; nil when absent
func (r *GridFileRepository) GetGridFile(name string) (*models.GridFile, error) {
	var data string
	err := r.db.QueryRow("SELECT data FROM grid_files WHERE name = ?", name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grid file: %w", err)
	}

	var gf models.GridFile
	if err := json.Unmarshal([]byte(data), &gf); err != nil {
		return nil, fmt.Errorf("failed to decode grid file %q: %w", name, err)
	}
	return &gf, nil
}

// ListGridFiles returns every stored grid record, newest first
func (r *GridFileRepository) ListGridFiles() ([]models.GridFile, error) {
	rows, err := r.db.Query("SELECT data FROM grid_files ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list grid files: %w", err)
	}
	defer rows.Close()

	var files []models.GridFile
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan grid file: %w", err)
		}

		var gf models.GridFile
		if err := json.Unmarshal([]byte(data), &gf); err != nil {
			return nil, fmt.Errorf("failed to decode grid file: %w", err)
		}
		files = append(files, gf)
	}

	return files, rows.Err()
}

// DeleteGridFile removes a stored grid record
func (r *GridFileRepository) DeleteGridFile(name string) error {
	result, err := r.db.Exec("DELETE FROM grid_files WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete grid file: %w", err)
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
