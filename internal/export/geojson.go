package export

import (
	"encoding/json"
	"time"
)

// GeoJSON geometry coordinates are [lon, lat] order per RFC 7946

type geoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string                 `json:"type"`
	Geometry   geoJSONGeometry        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geoJSONGeometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

func serializeGeoJSON(b Bundle) ([]byte, error) {
	fc := geoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: []geoJSONFeature{},
	}

	for _, r := range b.Readings {
		props := map[string]interface{}{
			"kind":        "reading",
			"id":          r.ID,
			"field_x":     r.FieldX,
			"field_y":     r.FieldY,
			"field_z":     r.FieldZ,
			"total_field": r.TotalField,
			"accuracy":    r.Accuracy,
			"captured_at": time.Unix(r.CapturedAt, 0).UTC().Format(time.RFC3339),
		}
		if r.Heading >= 0 {
			props["heading"] = r.Heading
		}
		if r.Note != "" {
			props["note"] = r.Note
		}

		fc.Features = append(fc.Features, geoJSONFeature{
			Type: "Feature",
			Geometry: geoJSONGeometry{
				Type:        "Point",
				Coordinates: []float64{r.Longitude, r.Latitude, r.Altitude},
			},
			Properties: props,
		})
	}

	for _, c := range b.Cells {
		// Ring must be explicitly closed in GeoJSON
		ring := make([][]float64, 0, len(c.Bounds)+1)
		for _, p := range c.Bounds {
			ring = append(ring, []float64{p.Lon, p.Lat})
		}
		if len(c.Bounds) > 0 {
			ring = append(ring, []float64{c.Bounds[0].Lon, c.Bounds[0].Lat})
		}

		fc.Features = append(fc.Features, geoJSONFeature{
			Type: "Feature",
			Geometry: geoJSONGeometry{
				Type:        "Polygon",
				Coordinates: [][][]float64{ring},
			},
			Properties: map[string]interface{}{
				"kind":        "grid_cell",
				"id":          c.ID,
				"status":      string(c.Status),
				"point_count": c.PointCount,
			},
		})
	}

	return json.MarshalIndent(fc, "", "  ")
}
