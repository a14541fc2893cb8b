package spatial

import (
	"math"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds describes the rectangle (MinLat,MinLon) - (MaxLat,MaxLon)
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// LatSpan returns the latitude extent of the bounds in degrees
func (b Bounds) LatSpan() float64 { return b.MaxLat - b.MinLat }

// LonSpan returns the longitude extent of the bounds in degrees
func (b Bounds) LonSpan() float64 { return b.MaxLon - b.MinLon }

// Center returns the midpoint of the bounds
func (b Bounds) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// PointInPolygon checks if a point is inside a polygon using ray casting.
// The ring does not need an explicit closing vertex. Degenerate rings
// (fewer than 3 vertices) are never hit.
func PointInPolygon(point Point, ring []Point) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1

	for i := 0; i < len(ring); i++ {
		if ((ring[i].Lat > point.Lat) != (ring[j].Lat > point.Lat)) &&
			(point.Lon < (ring[j].Lon-ring[i].Lon)*(point.Lat-ring[i].Lat)/(ring[j].Lat-ring[i].Lat)+ring[i].Lon) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// Centroid calculates the geographic centroid of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// BoundingBox calculates the bounding box of a set of points
func BoundingBox(points []Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}

	b := Bounds{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}

	for _, p := range points[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lon < b.MinLon {
			b.MinLon = p.Lon
		}
		if p.Lon > b.MaxLon {
			b.MaxLon = p.Lon
		}
	}

	return b
}

// BoundsOfRings calculates the bounding box over every vertex of a set of
// rings (one ring per grid cell)
func BoundsOfRings(rings [][]Point) Bounds {
	var all []Point
	for _, r := range rings {
		all = append(all, r...)
	}
	return BoundingBox(all)
}

// PolygonArea calculates the area of a polygon in square meters using the
// shoelace formula with a local equirectangular approximation. Good enough
// for survey-scale polygons (tens to hundreds of meters).
func PolygonArea(ring []Point) float64 {
	if len(ring) < 3 {
		return 0
	}

	var sum float64
	for i := 0; i < len(ring); i++ {
		j := (i + 1) % len(ring)
		sum += (ring[j].Lon - ring[i].Lon) * (ring[j].Lat + ring[i].Lat)
	}

	latRad := ring[0].Lat * math.Pi / 180
	metersPerDegreeLat := MetersPerDegreeLat
	metersPerDegreeLon := MetersPerDegreeLat * math.Cos(latRad)

	return math.Abs(sum) * metersPerDegreeLat * metersPerDegreeLon / 2.0
}
