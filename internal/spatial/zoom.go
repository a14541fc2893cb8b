package spatial

// OptimalZoom maps the degree span of a bounds rectangle to a discrete map
// zoom level. The breakpoints encode "degrees span -> map zoom" heuristics
// tuned for survey-scale grids.
func OptimalZoom(b Bounds) float64 {
	span := b.LatSpan()
	if b.LonSpan() > span {
		span = b.LonSpan()
	}

	switch {
	case span > 0.01:
		return 12
	case span > 0.005:
		return 13
	case span > 0.002:
		return 14
	case span > 0.001:
		return 15
	case span > 0.0005:
		return 16
	default:
		return 17
	}
}
