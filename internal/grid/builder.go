// Package grid builds the survey lattice: a rows x cols collection of
// axis-aligned square cells centered on a point, or derived from a set of
// user-picked boundary points.
package grid

import (
	"fmt"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
)

// BuildRegularGrid generates a rows x cols lattice of square cells centered
// on center. Spacing is the cell side in meters, converted to degrees of
// latitude; each cell is an axis-aligned square with a 4-point bounds ring
// in counter-clockwise winding, status NotStarted and zero point count.
func BuildRegularGrid(center spatial.Point, spacingMeters float64, rows, cols int) ([]models.GridCell, error) {
	if spacingMeters <= 0 {
		return nil, fmt.Errorf("grid spacing must be positive, got %v", spacingMeters)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", rows, cols)
	}

	spacingDeg := spatial.MetersToDegreesLat(spacingMeters)

	originLat := center.Lat - float64(rows)*spacingDeg/2
	originLon := center.Lon - float64(cols)*spacingDeg/2

	cells := make([]models.GridCell, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			minLat := originLat + float64(row)*spacingDeg
			minLon := originLon + float64(col)*spacingDeg
			maxLat := minLat + spacingDeg
			maxLon := minLon + spacingDeg

			cells = append(cells, models.GridCell{
				ID:  fmt.Sprintf("%d_%d", row, col),
				Row: row,
				Col: col,
				Bounds: []spatial.Point{
					{Lat: minLat, Lon: minLon},
					{Lat: minLat, Lon: maxLon},
					{Lat: maxLat, Lon: maxLon},
					{Lat: maxLat, Lon: minLon},
				},
				CenterLat:  minLat + spacingDeg/2,
				CenterLon:  minLon + spacingDeg/2,
				Status:     models.CellNotStarted,
				PointCount: 0,
			})
		}
	}

	return cells, nil
}

// BuildFromBoundary generates a grid from user-picked boundary points by
// feeding their centroid into the regular-grid layout. True irregular
// tessellation of the boundary is not performed; the boundary only anchors
// the grid center.
func BuildFromBoundary(boundary []spatial.Point, spacingMeters float64, rows, cols int) ([]models.GridCell, error) {
	if len(boundary) < 3 {
		return nil, fmt.Errorf("boundary needs at least 3 points, got %d", len(boundary))
	}
	return BuildRegularGrid(spatial.Centroid(boundary), spacingMeters, rows, cols)
}

// FromFile rebuilds the cell collection described by a stored grid file
func FromFile(gf *models.GridFile) ([]models.GridCell, error) {
	switch gf.Type {
	case models.GridTypeBoundary:
		return BuildFromBoundary(gf.Points, gf.SpacingMeters, gf.Rows, gf.Cols)
	case models.GridTypeRegular:
		center := spatial.Point{Lat: gf.CenterLat, Lon: gf.CenterLon}
		return BuildRegularGrid(center, gf.SpacingMeters, gf.Rows, gf.Cols)
	default:
		return nil, fmt.Errorf("unknown grid type %q", gf.Type)
	}
}

// BoundsOf scans every cell vertex and returns the grid's bounding box
func BoundsOf(cells []models.GridCell) spatial.Bounds {
	rings := make([][]spatial.Point, len(cells))
	for i := range cells {
		rings[i] = cells[i].Bounds
	}
	return spatial.BoundsOfRings(rings)
}
