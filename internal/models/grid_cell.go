package models

import "github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"

// CellStatus tracks survey progress of a single grid cell.
// Transitions are monotonic: NotStarted -> InProgress -> Completed.
type CellStatus string

const (
	CellNotStarted CellStatus = "not_started"
	CellInProgress CellStatus = "in_progress"
	CellCompleted  CellStatus = "completed"
)

// GridCell is one rectangular sub-region of the survey grid
type GridCell struct {
	ID  string `json:"id"` // Format: "{row}_{col}"
	Row int    `json:"row"`
	Col int    `json:"col"`

	// Geometry: ring of cell corners plus center point
	Bounds    []spatial.Point `json:"bounds"` // closed ring, consistent winding
	CenterLat float64         `json:"center_lat"`
	CenterLon float64         `json:"center_lon"`

	Status     CellStatus `json:"status"`
	PointCount int        `json:"point_count"`

	// Unix timestamps, 0 when unset
	StartedAt   int64 `json:"started_at,omitempty"`
	CompletedAt int64 `json:"completed_at,omitempty"`
}

// Center returns the cell center as a spatial point
func (c *GridCell) Center() spatial.Point {
	return spatial.Point{Lat: c.CenterLat, Lon: c.CenterLon}
}

// CoverageSnapshot is derived from the cell collection on every mutation.
// It is never persisted independently.
type CoverageSnapshot struct {
	CompletedCells int       `json:"completed_cells"`
	TotalCells     int       `json:"total_cells"`
	Percentage     float64   `json:"percentage"` // 0-100
	DistinctPoints int       `json:"distinct_points"`
	NextTarget     *GridCell `json:"next_target,omitempty"`
	OutsideGrid    bool      `json:"outside_grid"`
}
