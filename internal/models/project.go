package models

import "time"

// SurveyProject groups the readings collected for one survey site
type SurveyProject struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Derived, not stored
	ReadingCount int `json:"reading_count,omitempty" db:"-"`
}

// CreateProjectRequest is the payload for creating a new survey project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
