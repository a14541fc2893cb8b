package survey

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
)

// ReadingStore is the persistence collaborator the session hands successful
// readings to. Implemented by the sqlite reading repository.
type ReadingStore interface {
	InsertReading(reading *models.MagneticReading) (int64, error)
}

// Session holds the in-memory state of one running survey: the grid, the
// live point buffer, the saved points loaded at start, calibration, the
// latest sensor state pushed by the device, and the auto-collection timer.
//
// Sensor pushes and HTTP requests arrive concurrently, so all state is
// guarded by one mutex; between lock acquisitions every mutation is atomic
// from the caller's perspective.
type Session struct {
	mu sync.Mutex

	projectID string
	cells     []models.GridCell
	threshold int

	// Points recorded this session plus points loaded from storage.
	// Cell counts are recomputed against the union of both.
	readings    []models.MagneticReading
	savedPoints []spatial.Point

	calibration models.Calibration

	// Latest device state, pushed by the position/magnetometer streams
	lastPos  *models.Position
	lastSnap models.SensorSnapshot

	outsideGrid bool

	// Auto-collection. The collecting flag is the sole cancellation
	// mechanism; stopping must also stop the ticker so no dangling tick
	// fires after state has moved on.
	collecting bool
	stopCh     chan struct{}
	interval   time.Duration

	recorder *Recorder
	store    ReadingStore
}

// NewSession starts a survey session over a freshly built or loaded grid.
// savedReadings are the project's persisted readings; their positions count
// toward cell coverage immediately.
func NewSession(projectID string, cells []models.GridCell, savedReadings []models.MagneticReading, threshold int, recorder *Recorder, store ReadingStore) *Session {
	if threshold <= 0 {
		threshold = DefaultMinPointsPerCell
	}
	if recorder == nil {
		recorder = NewRecorder()
	}

	s := &Session{
		projectID: projectID,
		cells:     cells,
		threshold: threshold,
		recorder:  recorder,
		store:     store,
		interval:  5 * time.Second,
	}

	s.savedPoints = make([]spatial.Point, 0, len(savedReadings))
	for _, r := range savedReadings {
		s.savedPoints = append(s.savedPoints, spatial.Point{Lat: r.Latitude, Lon: r.Longitude})
	}

	RecountCells(s.cells, s.allPoints(), s.threshold, time.Now().Unix())
	return s
}

// allPoints returns the union of saved and session points. Caller holds mu.
func (s *Session) allPoints() []spatial.Point {
	pts := make([]spatial.Point, 0, len(s.savedPoints)+len(s.readings))
	pts = append(pts, s.savedPoints...)
	for _, r := range s.readings {
		pts = append(pts, spatial.Point{Lat: r.Latitude, Lon: r.Longitude})
	}
	return pts
}

// SetCalibration stores the per-axis offsets and calibration flags
func (s *Session) SetCalibration(cal models.Calibration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calibration = cal
}

// Calibration returns the current calibration state
func (s *Session) Calibration() models.Calibration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calibration
}

// UpdateSensors merges the latest position fix and magnetometer snapshot
// pushed by the device. A nil position clears the fix (GPS lost). The
// outside-grid flag is re-derived here: auto-collection pauses while the
// device is inside no cell and resumes on re-entry.
func (s *Session) UpdateSensors(pos *models.Position, snap models.SensorSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastPos = pos
	s.lastSnap = snap

	if pos == nil {
		return
	}

	inside := LocateCell(s.cells, spatial.Point{Lat: pos.Latitude, Lon: pos.Longitude}) >= 0
	if !inside && !s.outsideGrid {
		log.Printf("[Session] Device left the grid; auto-collection paused")
	}
	if inside && s.outsideGrid {
		log.Printf("[Session] Device re-entered the grid; auto-collection resumed")
	}
	s.outsideGrid = !inside
}

// Record takes one reading at the current position, persists it and updates
// cell coverage. On a storage failure the reading is still appended to the
// session buffer and counted, and the wrapped persistence error is returned
// so the caller can surface it.
func (s *Session) Record(note string) (*models.MagneticReading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordLocked(note)
}

func (s *Session) recordLocked(note string) (*models.MagneticReading, error) {
	reading, err := s.recorder.Record(s.lastPos, s.lastSnap, s.calibration, s.projectID, note)
	if err != nil {
		return nil, err
	}

	var persistErr error
	if s.store != nil {
		id, err := s.store.InsertReading(reading)
		if err != nil {
			persistErr = fmt.Errorf("%w: %v", ErrPersistence, err)
		} else {
			reading.ID = id
		}
	}

	s.readings = append(s.readings, *reading)
	RecountCells(s.cells, s.allPoints(), s.threshold, reading.CapturedAt)

	return reading, persistErr
}

// StartAutoCollect begins timer-driven collection. Each tick records a
// reading unless the device is outside the grid (paused) or has no fix.
// Starting while already collecting only adjusts the interval.
func (s *Session) StartAutoCollect(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interval > 0 {
		s.interval = interval
	}
	if s.collecting {
		return
	}

	s.collecting = true
	s.stopCh = make(chan struct{})
	go s.collectLoop(s.stopCh, s.interval)
	log.Printf("[Session] Auto-collection started (interval=%s)", s.interval)
}

// StopAutoCollect clears the collecting flag and cancels the pending timer
func (s *Session) StopAutoCollect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.collecting {
		return
	}
	s.collecting = false
	close(s.stopCh)
	s.stopCh = nil
	log.Printf("[Session] Auto-collection stopped")
}

// Collecting reports whether the auto-collection timer is active
func (s *Session) Collecting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collecting
}

func (s *Session) collectLoop(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.autoTick()
		}
	}
}

func (s *Session) autoTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.collecting {
		return
	}
	if s.outsideGrid {
		return
	}

	if _, err := s.recordLocked(""); err != nil {
		if errors.Is(err, ErrNoPosition) {
			// Recoverable: wait for the next fix
			return
		}
		log.Printf("[Session] Auto-collect tick failed: %v", err)
	}
}

// OutsideGrid reports whether the device's last fix fell inside no cell
func (s *Session) OutsideGrid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outsideGrid
}

// Coverage derives the current coverage snapshot
func (s *Session) Coverage() models.CoverageSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := make([]spatial.Point, 0, len(s.readings))
	for _, r := range s.readings {
		session = append(session, spatial.Point{Lat: r.Latitude, Lon: r.Longitude})
	}

	snap := Recompute(s.cells, session, s.savedPoints, s.threshold)
	snap.OutsideGrid = s.outsideGrid
	return snap
}

// Cells returns a copy of the current cell collection
func (s *Session) Cells() []models.GridCell {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.GridCell, len(s.cells))
	copy(out, s.cells)
	return out
}

// Readings returns a copy of the session's reading buffer
func (s *Session) Readings() []models.MagneticReading {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.MagneticReading, len(s.readings))
	copy(out, s.readings)
	return out
}

// ProjectID returns the project this session records into
func (s *Session) ProjectID() string {
	return s.projectID
}

// SyncSavedReadings reconciles the session with the store after a delete or
// an external import. Session-buffer entries that vanished from the store
// are dropped, stored readings already present in the buffer are not double
// counted, and the grid is recounted against the new union.
func (s *Session) SyncSavedReadings(stored []models.MagneticReading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	storedIDs := make(map[int64]struct{}, len(stored))
	for _, r := range stored {
		storedIDs[r.ID] = struct{}{}
	}

	kept := s.readings[:0]
	inBuffer := make(map[int64]struct{}, len(s.readings))
	for _, r := range s.readings {
		// ID 0 means the insert failed; the reading lives only in memory
		if r.ID != 0 {
			if _, ok := storedIDs[r.ID]; !ok {
				continue
			}
			inBuffer[r.ID] = struct{}{}
		}
		kept = append(kept, r)
	}
	s.readings = kept

	s.savedPoints = s.savedPoints[:0]
	for _, r := range stored {
		if _, ok := inBuffer[r.ID]; ok {
			continue
		}
		s.savedPoints = append(s.savedPoints, spatial.Point{Lat: r.Latitude, Lon: r.Longitude})
	}

	RecountCells(s.cells, s.allPoints(), s.threshold, time.Now().Unix())
}

// NextTargetDistance returns the haversine distance in meters and bearing in
// degrees from the device's last fix to the next target cell. ok is false
// when there is no fix or no remaining target.
func (s *Session) NextTargetDistance() (distance, bearing float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastPos == nil {
		return 0, 0, false
	}
	target := FindNextTarget(s.cells, s.threshold)
	if target == nil {
		return 0, 0, false
	}

	distance = spatial.HaversineDistance(s.lastPos.Latitude, s.lastPos.Longitude, target.CenterLat, target.CenterLon)
	bearing = spatial.Bearing(s.lastPos.Latitude, s.lastPos.Longitude, target.CenterLat, target.CenterLon)
	return distance, bearing, true
}
