package models

import "time"

// MagneticReading is one geotagged magnetometer sample. Readings are
// immutable after capture: they are inserted and deleted, never updated.
type MagneticReading struct {
	ID        int64  `json:"id" db:"id"`
	ProjectID string `json:"project_id" db:"project_id"`

	// Position
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Altitude  float64 `json:"altitude" db:"altitude"` // meters
	Accuracy  float64 `json:"accuracy" db:"accuracy"` // GPS accuracy, meters

	// Magnetic field, microtesla, after calibration offset subtraction
	FieldX     float64 `json:"field_x" db:"field_x"`
	FieldY     float64 `json:"field_y" db:"field_y"`
	FieldZ     float64 `json:"field_z" db:"field_z"`
	TotalField float64 `json:"total_field" db:"total_field"` // Euclidean norm of X/Y/Z

	// Heading in degrees (0-360); negative means not available
	Heading float64 `json:"heading,omitempty" db:"heading"`

	Note string `json:"note,omitempty" db:"note"`

	CapturedAt int64     `json:"captured_at" db:"captured_at"` // Unix timestamp in seconds
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ReadingsResponse represents a paginated response of readings
type ReadingsResponse struct {
	Data       []MagneticReading `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// ReadingFilter represents filter parameters for querying readings
type ReadingFilter struct {
	ProjectID string  `form:"projectId"`
	StartTime int64   `form:"startTime"` // Unix timestamp
	EndTime   int64   `form:"endTime"`   // Unix timestamp
	MinField  float64 `form:"minField"`  // total field lower bound, µT
	MaxField  float64 `form:"maxField"`  // total field upper bound, µT
	Page      int     `form:"page"`
	PageSize  int     `form:"pageSize"`
}
