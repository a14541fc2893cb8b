package survey

import (
	"testing"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/grid"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
)

func testGrid(t *testing.T, rows, cols int) []models.GridCell {
	t.Helper()
	cells, err := grid.BuildRegularGrid(spatial.Point{Lat: 5.6037, Lon: -0.1870}, 10, rows, cols)
	if err != nil {
		t.Fatalf("failed to build grid: %v", err)
	}
	return cells
}

func TestLocateCell(t *testing.T) {
	cells := testGrid(t, 4, 4)

	for i := range cells {
		if got := LocateCell(cells, cells[i].Center()); got != i {
			t.Errorf("LocateCell(center of %s) = %d, want %d", cells[i].ID, got, i)
		}
	}

	if got := LocateCell(cells, spatial.Point{Lat: 50, Lon: 10}); got != -1 {
		t.Errorf("LocateCell(far away) = %d, want -1", got)
	}
}

func TestRecountCellsTransitions(t *testing.T) {
	cells := testGrid(t, 2, 2)
	center := cells[0].Center()

	// One point: NotStarted -> InProgress with start time
	RecountCells(cells, []spatial.Point{center}, 2, 1000)
	if cells[0].Status != models.CellInProgress {
		t.Fatalf("after 1 point status = %s, want in_progress", cells[0].Status)
	}
	if cells[0].StartedAt != 1000 {
		t.Errorf("StartedAt = %d, want 1000", cells[0].StartedAt)
	}
	if cells[0].CompletedAt != 0 {
		t.Errorf("CompletedAt = %d, want 0", cells[0].CompletedAt)
	}

	// Second point at the threshold: InProgress -> Completed
	RecountCells(cells, []spatial.Point{center, center}, 2, 2000)
	if cells[0].Status != models.CellCompleted {
		t.Fatalf("after 2 points status = %s, want completed", cells[0].Status)
	}
	if cells[0].CompletedAt != 2000 {
		t.Errorf("CompletedAt = %d, want 2000", cells[0].CompletedAt)
	}
	if cells[0].PointCount != 2 {
		t.Errorf("PointCount = %d, want 2", cells[0].PointCount)
	}

	// Untouched cells stay not started
	if cells[3].Status != models.CellNotStarted {
		t.Errorf("untouched cell status = %s, want not_started", cells[3].Status)
	}
}

func TestRecountCellsMonotonicStatus(t *testing.T) {
	cells := testGrid(t, 2, 2)
	center := cells[0].Center()

	RecountCells(cells, []spatial.Point{center, center}, 2, 1000)
	if cells[0].Status != models.CellCompleted {
		t.Fatal("setup: cell should be completed")
	}

	// Points deleted: count drops, status must not regress
	RecountCells(cells, nil, 2, 2000)
	if cells[0].PointCount != 0 {
		t.Errorf("PointCount = %d, want 0 after recount", cells[0].PointCount)
	}
	if cells[0].Status != models.CellCompleted {
		t.Errorf("status regressed to %s", cells[0].Status)
	}
	if cells[0].CompletedAt != 1000 {
		t.Errorf("CompletedAt changed to %d", cells[0].CompletedAt)
	}
}

func TestFindNextTargetPriority(t *testing.T) {
	cells := []models.GridCell{
		{ID: "0_0", Status: models.CellCompleted, PointCount: 3},
		{ID: "0_1", Status: models.CellInProgress, PointCount: 1},
		{ID: "0_2", Status: models.CellNotStarted},
	}

	// An in-progress cell below the threshold beats the not-started one
	target := FindNextTarget(cells, 2)
	if target == nil || target.ID != "0_1" {
		t.Fatalf("next target = %v, want 0_1", target)
	}

	// Once it reaches the threshold, the first not-started cell is next
	cells[1].Status = models.CellCompleted
	cells[1].PointCount = 2
	target = FindNextTarget(cells, 2)
	if target == nil || target.ID != "0_2" {
		t.Fatalf("next target = %v, want 0_2", target)
	}

	// Nothing left
	cells[2].Status = models.CellCompleted
	if target = FindNextTarget(cells, 2); target != nil {
		t.Errorf("next target = %v, want nil", target)
	}
}

func TestDistinctPoints(t *testing.T) {
	a := spatial.Point{Lat: 5.603700, Lon: -0.187000}
	aDup := spatial.Point{Lat: 5.6037000004, Lon: -0.1870000004} // same at 6 decimals
	b := spatial.Point{Lat: 5.603800, Lon: -0.187000}

	tests := []struct {
		name    string
		session []spatial.Point
		saved   []spatial.Point
		want    int
	}{
		{"empty", nil, nil, 0},
		{"same point both buffers", []spatial.Point{a}, []spatial.Point{aDup}, 1},
		{"repeat in session", []spatial.Point{a, aDup}, nil, 1},
		{"two distinct", []spatial.Point{a}, []spatial.Point{b}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistinctPoints(tt.session, tt.saved); got != tt.want {
				t.Errorf("DistinctPoints = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecompute(t *testing.T) {
	cells := testGrid(t, 2, 2)

	snap := Recompute(cells, nil, nil, 2)
	if snap.Percentage != 0 {
		t.Errorf("empty grid percentage = %v, want 0", snap.Percentage)
	}
	if snap.NextTarget == nil {
		t.Error("expected a next target on a fresh grid")
	}

	// Complete every cell
	var points []spatial.Point
	for _, c := range cells {
		points = append(points, c.Center(), c.Center())
	}
	RecountCells(cells, points, 2, 1000)

	snap = Recompute(cells, points, nil, 2)
	if snap.Percentage != 100 {
		t.Errorf("full grid percentage = %v, want 100", snap.Percentage)
	}
	if snap.CompletedCells != 4 {
		t.Errorf("completed = %d, want 4", snap.CompletedCells)
	}
	if snap.NextTarget != nil {
		t.Errorf("next target = %v, want nil", snap.NextTarget)
	}
	if snap.Percentage < 0 || snap.Percentage > 100 {
		t.Errorf("percentage out of range: %v", snap.Percentage)
	}
}

func TestRecomputeEmptyGrid(t *testing.T) {
	snap := Recompute(nil, nil, nil, 2)
	if snap.Percentage != 0 || snap.TotalCells != 0 {
		t.Errorf("empty grid snapshot = %+v", snap)
	}
}
