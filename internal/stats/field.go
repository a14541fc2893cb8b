package stats

import (
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
)

// AnomalyThreshold is the z-score beyond which a total-field value is
// flagged as a magnetic anomaly candidate
const AnomalyThreshold = 2.5

// FieldSummary summarizes the total-field distribution of a project's
// readings. Anomaly candidates matter most to the surveyor: buried ferrous
// objects show up as readings several sigma away from the site background.
type FieldSummary struct {
	Count int `json:"count"`

	MinField    float64 `json:"min_field"`
	MaxField    float64 `json:"max_field"`
	MeanField   float64 `json:"mean_field"`
	MedianField float64 `json:"median_field"`
	StdDevField float64 `json:"stddev_field"`

	P10 float64 `json:"p10"`
	P90 float64 `json:"p90"`

	AnomalyCount int     `json:"anomaly_count"`
	MeanHeading  float64 `json:"mean_heading,omitempty"` // circular mean, degrees

	MeanAltitude float64 `json:"mean_altitude"`
	MeanAccuracy float64 `json:"mean_accuracy"`
}

// SummarizeField computes the field summary over a set of readings
func SummarizeField(readings []models.MagneticReading) FieldSummary {
	s := FieldSummary{Count: len(readings)}
	if len(readings) == 0 {
		return s
	}

	fields := make([]float64, 0, len(readings))
	altitudes := make([]float64, 0, len(readings))
	accuracies := make([]float64, 0, len(readings))
	var headings []float64

	for _, r := range readings {
		fields = append(fields, r.TotalField)
		altitudes = append(altitudes, r.Altitude)
		accuracies = append(accuracies, r.Accuracy)
		if r.Heading >= 0 {
			headings = append(headings, r.Heading)
		}
	}

	s.MinField = Min(fields)
	s.MaxField = Max(fields)
	s.MeanField = Mean(fields)
	s.MedianField = Median(fields)
	s.StdDevField = StdDev(fields)
	s.P10 = Percentile(fields, 10)
	s.P90 = Percentile(fields, 90)
	s.AnomalyCount = len(ZScoreOutliers(fields, AnomalyThreshold))

	if len(headings) > 0 {
		s.MeanHeading = spatial.CircularMeanDegrees(headings)
	}

	s.MeanAltitude = Mean(altitudes)
	s.MeanAccuracy = Mean(accuracies)

	return s
}
