package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
)

func testBundle() Bundle {
	return Bundle{
		Project: &models.SurveyProject{
			ID:          "proj1",
			Name:        "Legon North",
			Description: "Campus baseline survey",
			CreatedAt:   time.Unix(1700000000, 0),
		},
		Readings: []models.MagneticReading{
			{
				ID: 1, ProjectID: "proj1",
				Latitude: 5.6037, Longitude: -0.187, Altitude: 61.2, Accuracy: 3.1,
				FieldX: 12.5, FieldY: -3.2, FieldZ: 40.1, TotalField: 42.13,
				Heading: 182.4, CapturedAt: 1700000100, Note: "near gate",
			},
			{
				ID: 2, ProjectID: "proj1",
				Latitude: 5.6038, Longitude: -0.1871, Altitude: 61.0, Accuracy: 2.8,
				FieldX: 11.9, FieldY: -2.9, FieldZ: 39.8, TotalField: 41.64,
				Heading: -1, CapturedAt: 1700000160,
			},
		},
		Cells: []models.GridCell{
			{
				ID: "0_0", Row: 0, Col: 0,
				Bounds: []spatial.Point{
					{Lat: 5.6036, Lon: -0.1872},
					{Lat: 5.6036, Lon: -0.1870},
					{Lat: 5.6038, Lon: -0.1870},
					{Lat: 5.6038, Lon: -0.1872},
				},
				CenterLat: 5.6037, CenterLon: -0.1871,
				Status: models.CellInProgress, PointCount: 2,
			},
		},
		Notes: "Exported for QGIS",
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := Export(testBundle(), Format("xlsx"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExportCSV(t *testing.T) {
	data, err := Export(testBundle(), FormatCSV)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 readings", len(rows))
	}

	header := rows[0]
	if header[0] != "id" || header[2] != "latitude" || header[9] != "total_field" {
		t.Errorf("unexpected header: %v", header)
	}

	first := rows[1]
	if first[0] != "1" || first[1] != "proj1" {
		t.Errorf("row 1 id/project = %q/%q", first[0], first[1])
	}
	if first[2] != "5.6037000" {
		t.Errorf("latitude = %q, want 7-decimal form", first[2])
	}
	if first[11] != "2023-11-14T22:15:00Z" {
		t.Errorf("captured_at = %q", first[11])
	}
	if first[12] != "near gate" {
		t.Errorf("note = %q", first[12])
	}
}

func TestExportGeoJSON(t *testing.T) {
	data, err := Export(testBundle(), FormatGeoJSON)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Type     string `json:"type"`
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q", fc.Type)
	}
	if len(fc.Features) != 3 {
		t.Fatalf("got %d features, want 2 readings + 1 cell", len(fc.Features))
	}

	// Reading features come first, coordinates in [lon, lat, alt] order
	pt := fc.Features[0]
	if pt.Geometry.Type != "Point" {
		t.Fatalf("feature 0 geometry = %s", pt.Geometry.Type)
	}
	var coords []float64
	if err := json.Unmarshal(pt.Geometry.Coordinates, &coords); err != nil {
		t.Fatalf("point coordinates: %v", err)
	}
	if coords[0] != -0.187 || coords[1] != 5.6037 {
		t.Errorf("point coords = %v, want [lon lat alt]", coords)
	}

	// Negative heading means unknown and is omitted from properties
	if _, ok := fc.Features[1].Properties["heading"]; ok {
		t.Error("unknown heading leaked into properties")
	}

	// Cell polygon ring is explicitly closed
	poly := fc.Features[2]
	if poly.Geometry.Type != "Polygon" {
		t.Fatalf("feature 2 geometry = %s", poly.Geometry.Type)
	}
	var rings [][][]float64
	if err := json.Unmarshal(poly.Geometry.Coordinates, &rings); err != nil {
		t.Fatalf("polygon coordinates: %v", err)
	}
	ring := rings[0]
	if len(ring) != 5 {
		t.Fatalf("ring has %d positions, want 4 corners + closure", len(ring))
	}
	if ring[0][0] != ring[4][0] || ring[0][1] != ring[4][1] {
		t.Error("polygon ring is not closed")
	}
	if poly.Properties["status"] != "in_progress" {
		t.Errorf("cell status property = %v", poly.Properties["status"])
	}
}

func TestExportKML(t *testing.T) {
	data, err := Export(testBundle(), FormatKML)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "<?xml") {
		t.Error("missing XML declaration")
	}
	for _, want := range []string{
		`xmlns="http://www.opengis.net/kml/2.2"`,
		"<name>Legon North</name>",
		"Reading 1",
		"-0.1870000,5.6037000,61.2",
		"Cell 0_0",
		"<outerBoundaryIs>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestExportSQLiteDump(t *testing.T) {
	data, err := Export(testBundle(), FormatSQLite)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"BEGIN TRANSACTION;",
		"CREATE TABLE IF NOT EXISTS projects",
		"CREATE TABLE IF NOT EXISTS magnetic_readings",
		"INSERT INTO projects (id, name, description, created_at) VALUES ('proj1', 'Legon North',",
		"COMMIT;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q", want)
		}
	}
	if got := strings.Count(out, "INSERT INTO magnetic_readings"); got != 2 {
		t.Errorf("dump has %d reading inserts, want 2", got)
	}
}

func TestSQLQuoteEscapesSingleQuotes(t *testing.T) {
	b := testBundle()
	b.Project.Name = "O'Brien's plot"

	data, err := Export(b, FormatSQLite)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(data), "'O''Brien''s plot'") {
		t.Error("single quotes not doubled in SQL dump")
	}
}

func TestExportWKT(t *testing.T) {
	data, err := Export(testBundle(), FormatShapefile)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 2 readings + 1 cell", len(rows))
	}

	if rows[1][0] != "POINT (-0.1870000 5.6037000)" {
		t.Errorf("reading WKT = %q", rows[1][0])
	}

	cellWKT := rows[3][0]
	if !strings.HasPrefix(cellWKT, "POLYGON ((") {
		t.Fatalf("cell WKT = %q", cellWKT)
	}
	// First and last vertex must match: WKT rings are closed
	inner := strings.TrimSuffix(strings.TrimPrefix(cellWKT, "POLYGON (("), "))")
	verts := strings.Split(inner, ", ")
	if verts[0] != verts[len(verts)-1] {
		t.Errorf("WKT ring not closed: first %q last %q", verts[0], verts[len(verts)-1])
	}
}

func TestExtensionAndMIMEType(t *testing.T) {
	cases := []struct {
		format Format
		ext    string
		mime   string
	}{
		{FormatCSV, ".csv", "text/csv"},
		{FormatGeoJSON, ".geojson", "application/geo+json"},
		{FormatKML, ".kml", "application/vnd.google-earth.kml+xml"},
		{FormatSQLite, ".sql", "application/sql"},
		{FormatShapefile, ".csv", "text/csv"},
	}
	for _, tc := range cases {
		if got := Extension(tc.format); got != tc.ext {
			t.Errorf("Extension(%s) = %q, want %q", tc.format, got, tc.ext)
		}
		if got := MIMEType(tc.format); got != tc.mime {
			t.Errorf("MIMEType(%s) = %q, want %q", tc.format, got, tc.mime)
		}
	}

	if got := MIMEType(Format("nope")); got != "application/octet-stream" {
		t.Errorf("unknown MIME = %q", got)
	}
	if got := Extension(Format("nope")); got != "" {
		t.Errorf("unknown extension = %q", got)
	}
}
