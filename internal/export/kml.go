package export

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Name        string         `xml:"name"`
	Description string         `xml:"description,omitempty"`
	Placemarks  []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name        string      `xml:"name"`
	Description string      `xml:"description,omitempty"`
	TimeStamp   *kmlTime    `xml:"TimeStamp,omitempty"`
	Point       *kmlPoint   `xml:"Point,omitempty"`
	Polygon     *kmlPolygon `xml:"Polygon,omitempty"`
}

type kmlTime struct {
	When string `xml:"when"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"` // lon,lat,alt
}

type kmlPolygon struct {
	OuterBoundary kmlOuterBoundary `xml:"outerBoundaryIs"`
}

type kmlOuterBoundary struct {
	LinearRing kmlLinearRing `xml:"LinearRing"`
}

type kmlLinearRing struct {
	Coordinates string `xml:"coordinates"`
}

func serializeKML(b Bundle) ([]byte, error) {
	doc := kmlDocument{Name: "Magnetic Survey"}
	if b.Project != nil {
		doc.Name = b.Project.Name
		doc.Description = b.Project.Description
	}
	if b.Notes != "" {
		if doc.Description != "" {
			doc.Description += "\n"
		}
		doc.Description += b.Notes
	}

	for _, r := range b.Readings {
		doc.Placemarks = append(doc.Placemarks, kmlPlacemark{
			Name:        fmt.Sprintf("Reading %d", r.ID),
			Description: fmt.Sprintf("Total field: %.2f µT", r.TotalField),
			TimeStamp:   &kmlTime{When: time.Unix(r.CapturedAt, 0).UTC().Format(time.RFC3339)},
			Point: &kmlPoint{
				Coordinates: fmt.Sprintf("%.7f,%.7f,%.1f", r.Longitude, r.Latitude, r.Altitude),
			},
		})
	}

	for _, c := range b.Cells {
		var coords strings.Builder
		for _, p := range c.Bounds {
			fmt.Fprintf(&coords, "%.7f,%.7f,0 ", p.Lon, p.Lat)
		}
		if len(c.Bounds) > 0 {
			fmt.Fprintf(&coords, "%.7f,%.7f,0", c.Bounds[0].Lon, c.Bounds[0].Lat)
		}

		doc.Placemarks = append(doc.Placemarks, kmlPlacemark{
			Name:        fmt.Sprintf("Cell %s", c.ID),
			Description: fmt.Sprintf("Status: %s, points: %d", c.Status, c.PointCount),
			Polygon: &kmlPolygon{
				OuterBoundary: kmlOuterBoundary{
					LinearRing: kmlLinearRing{Coordinates: coords.String()},
				},
			},
		})
	}

	out, err := xml.MarshalIndent(kmlRoot{
		Xmlns:    "http://www.opengis.net/kml/2.2",
		Document: doc,
	}, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), out...), nil
}
