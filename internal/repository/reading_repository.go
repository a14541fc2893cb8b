package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
)

// ReadingRepository handles database operations for magnetic readings
type ReadingRepository struct {
	db *sql.DB
}

// NewReadingRepository creates a new reading repository
func NewReadingRepository(db *sql.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// InsertReading stores a reading and returns its generated id
func (r *ReadingRepository) InsertReading(m *models.MagneticReading) (int64, error) {
	query := `INSERT INTO magnetic_readings
		(project_id, latitude, longitude, altitude, accuracy,
		 field_x, field_y, field_z, total_field, heading, note, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		m.ProjectID, m.Latitude, m.Longitude, m.Altitude, m.Accuracy,
		m.FieldX, m.FieldY, m.FieldZ, m.TotalField, m.Heading, m.Note, m.CapturedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert reading: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get reading id: %w", err)
	}
	return id, nil
}

// GetReadings retrieves readings with filtering and pagination
func (r *ReadingRepository) GetReadings(filter models.ReadingFilter) ([]models.MagneticReading, int64, error) {
	query := `SELECT id, project_id, latitude, longitude, altitude, accuracy,
		field_x, field_y, field_z, total_field, heading, note, captured_at, created_at
		FROM magnetic_readings`

	var conditions []string
	var args []interface{}

	if filter.ProjectID != "" {
		conditions = append(conditions, "project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "captured_at >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "captured_at <= ?")
		args = append(args, filter.EndTime)
	}
	if filter.MinField > 0 {
		conditions = append(conditions, "total_field >= ?")
		args = append(args, filter.MinField)
	}
	if filter.MaxField > 0 {
		conditions = append(conditions, "total_field <= ?")
		args = append(args, filter.MaxField)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM magnetic_readings"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count readings: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY captured_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	var readings []models.MagneticReading
	for rows.Next() {
		var m models.MagneticReading
		err := rows.Scan(
			&m.ID, &m.ProjectID, &m.Latitude, &m.Longitude, &m.Altitude, &m.Accuracy,
			&m.FieldX, &m.FieldY, &m.FieldZ, &m.TotalField, &m.Heading, &m.Note,
			&m.CapturedAt, &m.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, m)
	}

	return readings, total, rows.Err()
}

// GetReadingsForProject retrieves every reading of one project in capture order
func (r *ReadingRepository) GetReadingsForProject(projectID string) ([]models.MagneticReading, error) {
	query := `SELECT id, project_id, latitude, longitude, altitude, accuracy,
		field_x, field_y, field_z, total_field, heading, note, captured_at, created_at
		FROM magnetic_readings WHERE project_id = ? ORDER BY captured_at ASC`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	var readings []models.MagneticReading
	for rows.Next() {
		var m models.MagneticReading
		err := rows.Scan(
			&m.ID, &m.ProjectID, &m.Latitude, &m.Longitude, &m.Altitude, &m.Accuracy,
			&m.FieldX, &m.FieldY, &m.FieldZ, &m.TotalField, &m.Heading, &m.Note,
			&m.CapturedAt, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, m)
	}

	return readings, rows.Err()
}

// GetReadingCount returns the number of readings stored for a project
func (r *ReadingRepository) GetReadingCount(projectID string) (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM magnetic_readings WHERE project_id = ?", projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count readings: %w", err)
	}
	return count, nil
}

// DeleteReading removes a single reading
func (r *ReadingRepository) DeleteReading(id int64) error {
	result, err := r.db.Exec("DELETE FROM magnetic_readings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete reading: %w", err)
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
