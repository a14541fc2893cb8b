// Package export serializes a survey (project metadata, readings, grid
// cells, notes) into common GIS interchange formats.
package export

import (
	"errors"
	"fmt"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
)

// Format selects the output serialization
type Format string

const (
	FormatCSV       Format = "csv"
	FormatGeoJSON   Format = "geojson"
	FormatKML       Format = "kml"
	FormatSQLite    Format = "sqlite"
	FormatShapefile Format = "shapefile" // WKT-based shapefile interchange
)

// ErrUnsupportedFormat is returned for unknown format selectors
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Bundle is everything a serializer needs. Serializers never mutate it;
// a failed export leaves survey state untouched.
type Bundle struct {
	Project  *models.SurveyProject
	Readings []models.MagneticReading
	Cells    []models.GridCell
	Notes    string
}

type serializer func(Bundle) ([]byte, error)

type formatInfo struct {
	serialize serializer
	extension string
	mimeType  string
}

var formats = map[Format]formatInfo{
	FormatCSV:       {serializeCSV, ".csv", "text/csv"},
	FormatGeoJSON:   {serializeGeoJSON, ".geojson", "application/geo+json"},
	FormatKML:       {serializeKML, ".kml", "application/vnd.google-earth.kml+xml"},
	FormatSQLite:    {serializeSQLiteDump, ".sql", "application/sql"},
	FormatShapefile: {serializeWKT, ".csv", "text/csv"},
}

// Export serializes the bundle in the requested format
func Export(b Bundle, f Format) ([]byte, error) {
	info, ok := formats[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}

	data, err := info.serialize(b)
	if err != nil {
		return nil, fmt.Errorf("export %s failed: %w", f, err)
	}
	return data, nil
}

// Extension returns the file extension for a format, dot included
func Extension(f Format) string {
	if info, ok := formats[f]; ok {
		return info.extension
	}
	return ""
}

// MIMEType returns the content type for a format
func MIMEType(f Format) string {
	if info, ok := formats[f]; ok {
		return info.mimeType
	}
	return "application/octet-stream"
}

// Formats lists the supported format selectors
func Formats() []Format {
	return []Format{FormatCSV, FormatGeoJSON, FormatKML, FormatSQLite, FormatShapefile}
}
