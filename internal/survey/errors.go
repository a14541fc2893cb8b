package survey

import "errors"

// Collection errors. All of them are recoverable: the caller surfaces a
// transient notice and the session keeps running. A failed operation never
// leaves the grid or the point buffers partially mutated.
var (
	// ErrNoPosition means no GPS fix is available; recording is blocked.
	ErrNoPosition = errors.New("no GPS position available")

	// ErrNotCalibrated means magnetic or GPS calibration is missing. This
	// is a soft gate by default (warn but allow); it is only returned when
	// the recorder is configured to enforce calibration.
	ErrNotCalibrated = errors.New("sensors not calibrated")

	// ErrNoGrid means no survey grid has been built or loaded yet.
	ErrNoGrid = errors.New("no survey grid loaded")

	// ErrPersistence wraps storage failures. The reading is retained in
	// the session buffer so it is not silently lost.
	ErrPersistence = errors.New("failed to persist reading")
)
