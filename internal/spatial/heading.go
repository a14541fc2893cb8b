package spatial

import "math"

// CircularMeanDegrees calculates the circular mean of compass headings in
// degrees. Plain averaging is wrong for angles (359 and 1 average to 180);
// the vector mean handles the wrap-around.
func CircularMeanDegrees(degrees []float64) float64 {
	if len(degrees) == 0 {
		return 0
	}

	var sumSin, sumCos float64
	for _, d := range degrees {
		rad := d * math.Pi / 180
		sumSin += math.Sin(rad)
		sumCos += math.Cos(rad)
	}

	mean := math.Atan2(sumSin, sumCos) * 180 / math.Pi
	return math.Mod(mean+360, 360)
}

// AngularDifferenceDegrees returns the smallest difference between two
// headings in degrees (0-180)
func AngularDifferenceDegrees(a, b float64) float64 {
	diff := math.Mod(math.Abs(a-b), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}
