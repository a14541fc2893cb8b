package models

import "github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"

// Grid type constants
const (
	GridTypeRegular  = "regular"
	GridTypeBoundary = "boundary"
)

// GridFile is the lightweight interchange record for reusing a grid across
// sessions. Stored as a JSON blob keyed by name.
type GridFile struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"` // "regular" or "boundary"
	Size     int             `json:"size"` // total cell count
	Points   []spatial.Point `json:"points,omitempty"` // boundary points for boundary grids
	Imported bool            `json:"imported"`

	// Regular grid parameters
	CenterLat     float64 `json:"center_lat,omitempty"`
	CenterLon     float64 `json:"center_lon,omitempty"`
	SpacingMeters float64 `json:"spacing,omitempty"`
	Rows          int     `json:"rows,omitempty"`
	Cols          int     `json:"cols,omitempty"`
}

// BuildGridRequest is the payload for constructing a new survey grid
type BuildGridRequest struct {
	Name          string          `json:"name"`
	CenterLat     float64         `json:"center_lat"`
	CenterLon     float64         `json:"center_lon"`
	SpacingMeters float64         `json:"spacing" binding:"required"`
	Rows          int             `json:"rows" binding:"required"`
	Cols          int             `json:"cols" binding:"required"`
	Boundary      []spatial.Point `json:"boundary,omitempty"` // >= 3 points switches to boundary mode
}
