package survey

import (
	"errors"
	"testing"
	"time"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
)

type fakeStore struct {
	inserted []models.MagneticReading
	nextID   int64
	failWith error
}

func (f *fakeStore) InsertReading(r *models.MagneticReading) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.nextID++
	stored := *r
	stored.ID = f.nextID
	f.inserted = append(f.inserted, stored)
	return f.nextID, nil
}

func newTestSession(t *testing.T, store ReadingStore) *Session {
	t.Helper()
	cells := testGrid(t, 2, 2)
	s := NewSession("p1", cells, nil, 2, NewRecorder(), store)
	s.SetCalibration(calibrated)
	return s
}

func positionAt(p spatial.Point) *models.Position {
	return &models.Position{Latitude: p.Lat, Longitude: p.Lon, Accuracy: 2}
}

func TestSessionRecordNoFixLeavesStateUnchanged(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)

	before := s.Cells()
	if _, err := s.Record(""); !errors.Is(err, ErrNoPosition) {
		t.Fatalf("err = %v, want ErrNoPosition", err)
	}

	after := s.Cells()
	for i := range before {
		if before[i].Status != after[i].Status || before[i].PointCount != after[i].PointCount {
			t.Fatalf("cell %s mutated on failed record", before[i].ID)
		}
	}
	if len(store.inserted) != 0 {
		t.Error("a reading was persisted despite the failure")
	}
	if len(s.Readings()) != 0 {
		t.Error("session buffer grew despite the failure")
	}
}

func TestSessionRecordCompletesCell(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)

	cellCenter := s.Cells()[0].Center()
	s.UpdateSensors(positionAt(cellCenter), models.SensorSnapshot{RawX: 31, RawY: 2, RawZ: -14})

	if _, err := s.Record(""); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if got := s.Cells()[0].Status; got != models.CellInProgress {
		t.Fatalf("after 1st reading status = %s, want in_progress", got)
	}

	if _, err := s.Record(""); err != nil {
		t.Fatalf("second record: %v", err)
	}
	cell := s.Cells()[0]
	if cell.Status != models.CellCompleted {
		t.Fatalf("after 2nd reading status = %s, want completed", cell.Status)
	}
	if cell.CompletedAt == 0 {
		t.Error("completed cell has no completion timestamp")
	}

	if len(store.inserted) != 2 {
		t.Errorf("persisted %d readings, want 2", len(store.inserted))
	}
}

func TestSessionRecordPersistenceFailureKeepsReading(t *testing.T) {
	store := &fakeStore{failWith: errors.New("disk full")}
	s := newTestSession(t, store)

	cellCenter := s.Cells()[0].Center()
	s.UpdateSensors(positionAt(cellCenter), models.SensorSnapshot{RawX: 30})

	_, err := s.Record("")
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}

	// The reading still lives in the session buffer and counts for coverage
	if got := len(s.Readings()); got != 1 {
		t.Fatalf("session buffer has %d readings, want 1", got)
	}
	if got := s.Cells()[0].PointCount; got != 1 {
		t.Errorf("cell point count = %d, want 1", got)
	}
}

func TestSessionOutsideGridPausesAutoCollect(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)

	// Auto-collection with a long interval; ticks are driven manually
	s.StartAutoCollect(time.Hour)
	defer s.StopAutoCollect()

	inside := s.Cells()[0].Center()
	s.UpdateSensors(positionAt(inside), models.SensorSnapshot{RawX: 30})
	s.autoTick()
	if got := len(s.Readings()); got != 1 {
		t.Fatalf("inside grid: %d readings, want 1", got)
	}

	// Device leaves the grid: collection pauses, nothing is discarded
	s.UpdateSensors(positionAt(spatial.Point{Lat: 50, Lon: 10}), models.SensorSnapshot{RawX: 30})
	if !s.OutsideGrid() {
		t.Fatal("outside-grid flag not set")
	}
	s.autoTick()
	s.autoTick()
	if got := len(s.Readings()); got != 1 {
		t.Fatalf("outside grid: %d readings, want still 1", got)
	}

	// Re-entry resumes automatically
	s.UpdateSensors(positionAt(inside), models.SensorSnapshot{RawX: 30})
	if s.OutsideGrid() {
		t.Fatal("outside-grid flag still set after re-entry")
	}
	s.autoTick()
	if got := len(s.Readings()); got != 2 {
		t.Fatalf("after re-entry: %d readings, want 2", got)
	}
}

func TestSessionStopAutoCollectCancelsTimer(t *testing.T) {
	s := newTestSession(t, &fakeStore{})

	s.StartAutoCollect(time.Millisecond)
	if !s.Collecting() {
		t.Fatal("collecting flag not set")
	}

	s.StopAutoCollect()
	if s.Collecting() {
		t.Fatal("collecting flag still set")
	}

	// A second stop is a no-op, not a panic
	s.StopAutoCollect()
}

func TestSessionCoverage(t *testing.T) {
	s := newTestSession(t, &fakeStore{})

	snap := s.Coverage()
	if snap.TotalCells != 4 || snap.CompletedCells != 0 || snap.Percentage != 0 {
		t.Fatalf("fresh coverage = %+v", snap)
	}

	center := s.Cells()[0].Center()
	s.UpdateSensors(positionAt(center), models.SensorSnapshot{RawX: 30})
	s.Record("")
	s.Record("")

	snap = s.Coverage()
	if snap.CompletedCells != 1 {
		t.Errorf("completed = %d, want 1", snap.CompletedCells)
	}
	if snap.Percentage != 25 {
		t.Errorf("percentage = %v, want 25", snap.Percentage)
	}
	// Same coordinate recorded twice counts once as a distinct point
	if snap.DistinctPoints != 1 {
		t.Errorf("distinct points = %d, want 1", snap.DistinctPoints)
	}
}

func TestSessionSavedReadingsCountImmediately(t *testing.T) {
	cells := testGrid(t, 2, 2)
	center := cells[0].Center()
	saved := []models.MagneticReading{
		{ID: 1, Latitude: center.Lat, Longitude: center.Lon},
		{ID: 2, Latitude: center.Lat, Longitude: center.Lon},
	}

	s := NewSession("p1", cells, saved, 2, NewRecorder(), &fakeStore{})
	if got := s.Cells()[0].Status; got != models.CellCompleted {
		t.Fatalf("cell with 2 saved readings = %s, want completed", got)
	}
}

func TestSessionSyncSavedReadings(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)

	center := s.Cells()[0].Center()
	s.UpdateSensors(positionAt(center), models.SensorSnapshot{RawX: 30})
	s.Record("")
	s.Record("")

	// Store now holds both; syncing must not double count them
	s.SyncSavedReadings(store.inserted)
	if got := s.Cells()[0].PointCount; got != 2 {
		t.Errorf("after sync point count = %d, want 2", got)
	}

	// One reading deleted from the store: buffer shrinks, count drops,
	// completed status is sticky
	s.SyncSavedReadings(store.inserted[:1])
	if got := len(s.Readings()); got != 1 {
		t.Errorf("buffer has %d readings after delete, want 1", got)
	}
	if got := s.Cells()[0].PointCount; got != 1 {
		t.Errorf("point count = %d, want 1", got)
	}
	if got := s.Cells()[0].Status; got != models.CellCompleted {
		t.Errorf("status = %s, want completed (monotonic)", got)
	}
}

func TestSessionNextTargetDistance(t *testing.T) {
	s := newTestSession(t, &fakeStore{})

	if _, _, ok := s.NextTargetDistance(); ok {
		t.Fatal("expected no target info without a fix")
	}

	target := s.Cells()[0]
	s.UpdateSensors(positionAt(target.Center()), models.SensorSnapshot{})
	dist, bearing, ok := s.NextTargetDistance()
	if !ok {
		t.Fatal("expected target info with a fix")
	}
	if dist > 1 {
		t.Errorf("distance to own cell center = %v m, want ~0", dist)
	}
	if bearing < 0 || bearing >= 360 {
		t.Errorf("bearing = %v, want [0,360)", bearing)
	}
}
