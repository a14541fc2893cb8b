package survey

import (
	"fmt"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
)

// DefaultMinPointsPerCell is the number of points a cell needs before it
// counts as surveyed. Field practice varies between 2 and 5; always
// configurable, never assume a single correct value.
const DefaultMinPointsPerCell = 2

// LocateCell returns the index of the cell containing p, or -1 when the
// point falls inside no cell. Ray casting is the authoritative containment
// test; a bounding-box shortcut misclassifies points for boundary-drawn
// grids.
func LocateCell(cells []models.GridCell, p spatial.Point) int {
	for i := range cells {
		if spatial.PointInPolygon(p, cells[i].Bounds) {
			return i
		}
	}
	return -1
}

// RecountCells re-tests every recorded point against every cell and updates
// point counts and statuses in place. The full recount (rather than an
// incremental bump) stays correct when readings are deleted or when
// previously-saved readings are loaded after grid creation.
//
// Status transitions are monotonic: NotStarted -> InProgress -> Completed.
// A shrinking point count never reverts a status within a session.
func RecountCells(cells []models.GridCell, points []spatial.Point, threshold int, now int64) {
	if threshold <= 0 {
		threshold = DefaultMinPointsPerCell
	}

	for i := range cells {
		c := &cells[i]

		count := 0
		for _, p := range points {
			if spatial.PointInPolygon(p, c.Bounds) {
				count++
			}
		}
		c.PointCount = count

		if count > 0 && c.Status == models.CellNotStarted {
			c.Status = models.CellInProgress
			if c.StartedAt == 0 {
				c.StartedAt = now
			}
		}
		if count >= threshold && c.Status != models.CellCompleted {
			c.Status = models.CellCompleted
			if c.CompletedAt == 0 {
				c.CompletedAt = now
			}
		}
	}
}

// FindNextTarget picks the cell the surveyor should head to next:
// first any in-progress cell still below the completion threshold (finish
// what was started), otherwise the first not-started cell in iteration
// order. Selection is list-order based; no nearest-cell optimization.
func FindNextTarget(cells []models.GridCell, threshold int) *models.GridCell {
	if threshold <= 0 {
		threshold = DefaultMinPointsPerCell
	}

	for i := range cells {
		if cells[i].Status == models.CellInProgress && cells[i].PointCount < threshold {
			return &cells[i]
		}
	}
	for i := range cells {
		if cells[i].Status == models.CellNotStarted {
			return &cells[i]
		}
	}
	return nil
}

// dedupKey rounds a coordinate to 6 decimal places (~0.11 m) so the same
// physical point in the live session buffer and the persisted store is
// counted once.
func dedupKey(p spatial.Point) string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

// DistinctPoints counts unique coordinates over the union of the session
// buffer and previously saved readings
func DistinctPoints(sessionPoints, savedPoints []spatial.Point) int {
	seen := make(map[string]struct{}, len(sessionPoints)+len(savedPoints))
	for _, p := range sessionPoints {
		seen[dedupKey(p)] = struct{}{}
	}
	for _, p := range savedPoints {
		seen[dedupKey(p)] = struct{}{}
	}
	return len(seen)
}

// Recompute derives the coverage snapshot from current cell states. It is a
// pure function of its inputs; nothing is persisted.
func Recompute(cells []models.GridCell, sessionPoints, savedPoints []spatial.Point, threshold int) models.CoverageSnapshot {
	snap := models.CoverageSnapshot{
		TotalCells:     len(cells),
		DistinctPoints: DistinctPoints(sessionPoints, savedPoints),
	}

	for i := range cells {
		if cells[i].Status == models.CellCompleted {
			snap.CompletedCells++
		}
	}

	if snap.TotalCells > 0 {
		snap.Percentage = float64(snap.CompletedCells) / float64(snap.TotalCells) * 100
	}

	snap.NextTarget = FindNextTarget(cells, threshold)
	return snap
}
