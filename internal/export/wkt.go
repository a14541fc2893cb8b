package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
)

// serializeWKT writes shapefile-interchange CSV: one WKT geometry column
// plus attributes, loadable by QGIS/ogr2ogr as a point (readings) and
// polygon (cells) layer mix.
func serializeWKT(b Bundle) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"wkt", "kind", "id", "total_field", "status", "point_count"}); err != nil {
		return nil, err
	}

	for _, r := range b.Readings {
		row := []string{
			fmt.Sprintf("POINT (%.7f %.7f)", r.Longitude, r.Latitude),
			"reading",
			strconv.FormatInt(r.ID, 10),
			strconv.FormatFloat(r.TotalField, 'f', -1, 64),
			"",
			"",
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	for _, c := range b.Cells {
		row := []string{
			polygonWKT(c.Bounds),
			"grid_cell",
			c.ID,
			"",
			string(c.Status),
			strconv.Itoa(c.PointCount),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// polygonWKT renders a closed POLYGON from a cell bounds ring
func polygonWKT(ring []spatial.Point) string {
	if len(ring) < 3 {
		return "POLYGON EMPTY"
	}

	var sb strings.Builder
	sb.WriteString("POLYGON ((")
	for i, p := range ring {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%.7f %.7f", p.Lon, p.Lat)
	}
	// WKT rings are explicitly closed
	fmt.Fprintf(&sb, ", %.7f %.7f))", ring[0].Lon, ring[0].Lat)
	return sb.String()
}
