package models

// Position is a single GPS fix from the device position stream
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`          // meters
	Accuracy  float64 `json:"accuracy"`          // meters
	Heading   float64 `json:"heading,omitempty"` // degrees, negative when unknown
}

// SensorSnapshot is the raw magnetometer/compass state at capture time
type SensorSnapshot struct {
	RawX    float64 `json:"raw_x"` // microtesla
	RawY    float64 `json:"raw_y"`
	RawZ    float64 `json:"raw_z"`
	Heading float64 `json:"heading,omitempty"` // compass degrees, negative when unknown
}

// Calibration holds the per-axis offsets captured once and subtracted from
// every subsequent raw reading to zero out ambient/device bias
type Calibration struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	OffsetZ float64 `json:"offset_z"`

	MagCalibrated bool `json:"mag_calibrated"`
	GPSCalibrated bool `json:"gps_calibrated"`
}

// TeamMember is a remote collaborator's last known position. Team positions
// are merged read-only; they never mutate the local grid state.
type TeamMember struct {
	DeviceID  string  `json:"device_id"`
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	UpdatedAt int64   `json:"updated_at"` // Unix timestamp
}
