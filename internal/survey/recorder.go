package survey

import (
	"log"
	"math"
	"time"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
)

// Recorder builds immutable readings from the current sensor snapshot and
// position, subject to calibration gating.
type Recorder struct {
	// EnforceCalibration turns the calibration check into a hard gate.
	// Default is warn-and-allow: the field worker is notified but the
	// reading is still taken.
	EnforceCalibration bool

	now func() time.Time
}

// NewRecorder creates a recorder with the default soft calibration gate
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// Record produces a reading from a position fix and a raw magnetometer
// snapshot. Per-axis calibration offsets are subtracted before the total
// field is computed, so TotalField is always the Euclidean norm of the
// calibrated axis components.
func (r *Recorder) Record(pos *models.Position, snap models.SensorSnapshot, cal models.Calibration, projectID, note string) (*models.MagneticReading, error) {
	if pos == nil {
		return nil, ErrNoPosition
	}

	if !cal.MagCalibrated || !cal.GPSCalibrated {
		if r.EnforceCalibration {
			return nil, ErrNotCalibrated
		}
		log.Printf("[Recorder] Warning: recording without calibration (mag=%v gps=%v)",
			cal.MagCalibrated, cal.GPSCalibrated)
	}

	x := snap.RawX - cal.OffsetX
	y := snap.RawY - cal.OffsetY
	z := snap.RawZ - cal.OffsetZ

	heading := snap.Heading
	if heading < 0 {
		heading = pos.Heading
	}

	nowFn := r.now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	return &models.MagneticReading{
		ProjectID:  projectID,
		Latitude:   pos.Latitude,
		Longitude:  pos.Longitude,
		Altitude:   pos.Altitude,
		Accuracy:   pos.Accuracy,
		FieldX:     x,
		FieldY:     y,
		FieldZ:     z,
		TotalField: math.Sqrt(x*x + y*y + z*z),
		Heading:    heading,
		Note:       note,
		CapturedAt: now.Unix(),
		CreatedAt:  now,
	}, nil
}
