package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"
)

// readingHeader is the single source of truth for CSV column ordering
var readingHeader = []string{
	"id", "project_id", "latitude", "longitude", "altitude", "accuracy",
	"field_x", "field_y", "field_z", "total_field", "heading",
	"captured_at", "note",
}

func serializeCSV(b Bundle) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(readingHeader); err != nil {
		return nil, err
	}

	for _, r := range b.Readings {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.ProjectID,
			formatCoord(r.Latitude),
			formatCoord(r.Longitude),
			formatFloat(r.Altitude),
			formatFloat(r.Accuracy),
			formatFloat(r.FieldX),
			formatFloat(r.FieldY),
			formatFloat(r.FieldZ),
			formatFloat(r.TotalField),
			formatFloat(r.Heading),
			time.Unix(r.CapturedAt, 0).UTC().Format(time.RFC3339),
			r.Note,
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

// formatCoord keeps 7 decimals (~1 cm) so round-tripped coordinates survive
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 7, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
