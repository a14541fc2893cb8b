package grid

import (
	"testing"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
)

var accraCenter = spatial.Point{Lat: 5.6037, Lon: -0.1870}

func TestBuildRegularGrid(t *testing.T) {
	cells, err := BuildRegularGrid(accraCenter, 10, 4, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 16 {
		t.Fatalf("got %d cells, want 16", len(cells))
	}

	ids := make(map[string]bool)
	for _, c := range cells {
		if ids[c.ID] {
			t.Errorf("duplicate cell id %q", c.ID)
		}
		ids[c.ID] = true

		if len(c.Bounds) != 4 {
			t.Errorf("cell %s has %d bound points, want 4", c.ID, len(c.Bounds))
		}
		if c.Status != models.CellNotStarted {
			t.Errorf("cell %s status = %s, want not_started", c.ID, c.Status)
		}
		if c.PointCount != 0 {
			t.Errorf("cell %s point count = %d, want 0", c.ID, c.PointCount)
		}

		// Each cell must contain its own center
		if !spatial.PointInPolygon(c.Center(), c.Bounds) {
			t.Errorf("cell %s does not contain its center", c.ID)
		}
	}
}

func TestBuildRegularGridCenteredOnCenter(t *testing.T) {
	cells, err := BuildRegularGrid(accraCenter, 10, 4, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := BoundsOf(cells)
	c := b.Center()
	if diff := c.Lat - accraCenter.Lat; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("grid center lat = %v, want %v", c.Lat, accraCenter.Lat)
	}
	if diff := c.Lon - accraCenter.Lon; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("grid center lon = %v, want %v", c.Lon, accraCenter.Lon)
	}

	// 4 cells of 10m spacing span ~40m of latitude
	span := b.LatSpan() * spatial.MetersPerDegreeLat
	if span < 39.9 || span > 40.1 {
		t.Errorf("grid lat span = %v m, want ~40", span)
	}
}

func TestBuildRegularGridValidation(t *testing.T) {
	tests := []struct {
		name       string
		spacing    float64
		rows, cols int
	}{
		{"zero spacing", 0, 4, 4},
		{"negative spacing", -5, 4, 4},
		{"zero rows", 10, 0, 4},
		{"negative cols", 10, 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildRegularGrid(accraCenter, tt.spacing, tt.rows, tt.cols); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestBuildFromBoundary(t *testing.T) {
	boundary := []spatial.Point{
		{Lat: 5.603, Lon: -0.188},
		{Lat: 5.603, Lon: -0.186},
		{Lat: 5.605, Lon: -0.186},
		{Lat: 5.605, Lon: -0.188},
	}

	cells, err := BuildFromBoundary(boundary, 10, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 9 {
		t.Fatalf("got %d cells, want 9", len(cells))
	}

	// Grid is anchored on the boundary centroid
	center := BoundsOf(cells).Center()
	want := spatial.Centroid(boundary)
	if d := spatial.Distance(center, want); d > 0.5 {
		t.Errorf("grid center %v is %.2f m from boundary centroid %v", center, d, want)
	}
}

func TestBuildFromBoundaryTooFewPoints(t *testing.T) {
	boundary := []spatial.Point{{Lat: 5.603, Lon: -0.188}, {Lat: 5.605, Lon: -0.186}}
	if _, err := BuildFromBoundary(boundary, 10, 3, 3); err == nil {
		t.Error("expected an error for a 2-point boundary")
	}
}

func TestFromFile(t *testing.T) {
	regular := &models.GridFile{
		Name: "site-a", Type: models.GridTypeRegular,
		CenterLat: accraCenter.Lat, CenterLon: accraCenter.Lon,
		SpacingMeters: 10, Rows: 4, Cols: 4,
	}
	cells, err := FromFile(regular)
	if err != nil {
		t.Fatalf("regular: %v", err)
	}
	if len(cells) != 16 {
		t.Errorf("regular: got %d cells, want 16", len(cells))
	}

	boundary := &models.GridFile{
		Name: "site-b", Type: models.GridTypeBoundary,
		Points: []spatial.Point{
			{Lat: 5.603, Lon: -0.188},
			{Lat: 5.603, Lon: -0.186},
			{Lat: 5.605, Lon: -0.187},
		},
		SpacingMeters: 10, Rows: 2, Cols: 2,
	}
	cells, err = FromFile(boundary)
	if err != nil {
		t.Fatalf("boundary: %v", err)
	}
	if len(cells) != 4 {
		t.Errorf("boundary: got %d cells, want 4", len(cells))
	}

	if _, err := FromFile(&models.GridFile{Name: "x", Type: "hexagonal"}); err == nil {
		t.Error("expected an error for an unknown grid type")
	}
}
