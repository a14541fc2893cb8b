package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/config"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/grid"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/models"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/repository"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/spatial"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/survey"
)

// ErrNoSession is returned for session operations before a survey starts
var ErrNoSession = errors.New("no active survey session")

// GridView is what the map screen needs to render a grid: the cells, their
// overall bounds and a zoom level fitting them.
type GridView struct {
	Cells  []models.GridCell `json:"cells"`
	Bounds spatial.Bounds    `json:"bounds"`
	Zoom   float64           `json:"zoom"`
}

// SurveyService orchestrates grid construction, the active survey session
// and reading persistence. One session is active at a time, mirroring the
// single-device collection model.
type SurveyService struct {
	mu      sync.Mutex
	session *survey.Session

	projects  *repository.ProjectRepository
	readings  *repository.ReadingRepository
	gridFiles *repository.GridFileRepository

	cfg config.SurveyConfig
}

// NewSurveyService creates a survey service
func NewSurveyService(projects *repository.ProjectRepository, readings *repository.ReadingRepository, gridFiles *repository.GridFileRepository, cfg config.SurveyConfig) *SurveyService {
	return &SurveyService{
		projects:  projects,
		readings:  readings,
		gridFiles: gridFiles,
		cfg:       cfg,
	}
}

// BuildGrid constructs a grid from the request and persists its interchange
// record for reuse. A boundary of 3 or more points switches to boundary
// mode; otherwise the explicit center is used.
func (s *SurveyService) BuildGrid(req models.BuildGridRequest) (*models.GridFile, *GridView, error) {
	var (
		cells []models.GridCell
		err   error
	)

	gf := &models.GridFile{
		Name:          req.Name,
		Size:          req.Rows * req.Cols,
		SpacingMeters: req.SpacingMeters,
		Rows:          req.Rows,
		Cols:          req.Cols,
	}

	if len(req.Boundary) >= 3 {
		gf.Type = models.GridTypeBoundary
		gf.Points = req.Boundary
		cells, err = grid.BuildFromBoundary(req.Boundary, req.SpacingMeters, req.Rows, req.Cols)
		if err == nil {
			center := spatial.Centroid(req.Boundary)
			gf.CenterLat = center.Lat
			gf.CenterLon = center.Lon
		}
	} else {
		gf.Type = models.GridTypeRegular
		gf.CenterLat = req.CenterLat
		gf.CenterLon = req.CenterLon
		cells, err = grid.BuildRegularGrid(spatial.Point{Lat: req.CenterLat, Lon: req.CenterLon}, req.SpacingMeters, req.Rows, req.Cols)
	}
	if err != nil {
		return nil, nil, err
	}

	if gf.Name == "" {
		suffix, err := gonanoid.Generate(idAlphabet, 8)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate grid name: %w", err)
		}
		gf.Name = "grid_" + suffix
	}

	if err := s.gridFiles.SaveGridFile(gf); err != nil {
		return nil, nil, err
	}

	return gf, viewOf(cells), nil
}

// ListGridFiles returns every stored grid interchange record
func (s *SurveyService) ListGridFiles() ([]models.GridFile, error) {
	return s.gridFiles.ListGridFiles()
}

// DeleteGridFile removes a stored grid record
func (s *SurveyService) DeleteGridFile(name string) error {
	return s.gridFiles.DeleteGridFile(name)
}

// StartSession begins collecting for a project over a stored grid. Any
// previously persisted readings of the project count toward coverage
// immediately. An already-running session is ended first.
func (s *SurveyService) StartSession(projectID, gridName string) (*GridView, error) {
	project, err := s.projects.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %q not found", projectID)
	}

	gf, err := s.gridFiles.GetGridFile(gridName)
	if err != nil {
		return nil, err
	}
	if gf == nil {
		return nil, fmt.Errorf("grid %q not found", gridName)
	}

	cells, err := grid.FromFile(gf)
	if err != nil {
		return nil, err
	}

	saved, err := s.readings.GetReadingsForProject(projectID)
	if err != nil {
		return nil, err
	}

	recorder := survey.NewRecorder()
	recorder.EnforceCalibration = s.cfg.EnforceCalibration

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		s.session.StopAutoCollect()
	}
	s.session = survey.NewSession(projectID, cells, saved, s.cfg.MinPointsPerCell, recorder, s.readings)

	return viewOf(s.session.Cells()), nil
}

// EndSession stops auto-collection and drops the active session
func (s *SurveyService) EndSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrNoSession
	}
	s.session.StopAutoCollect()
	s.session = nil
	return nil
}

func (s *SurveyService) active() (*survey.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoSession
	}
	return s.session, nil
}

// UpdateSensors pushes the latest position fix and magnetometer snapshot
func (s *SurveyService) UpdateSensors(pos *models.Position, snap models.SensorSnapshot) error {
	sess, err := s.active()
	if err != nil {
		return err
	}
	sess.UpdateSensors(pos, snap)
	return nil
}

// SetCalibration stores calibration offsets on the active session
func (s *SurveyService) SetCalibration(cal models.Calibration) error {
	sess, err := s.active()
	if err != nil {
		return err
	}
	sess.SetCalibration(cal)
	return nil
}

// Record takes one manual reading
func (s *SurveyService) Record(note string) (*models.MagneticReading, error) {
	sess, err := s.active()
	if err != nil {
		return nil, err
	}
	return sess.Record(note)
}

// StartAutoCollect begins timer-driven collection. A non-positive interval
// falls back to the configured default.
func (s *SurveyService) StartAutoCollect(interval time.Duration) error {
	sess, err := s.active()
	if err != nil {
		return err
	}
	if interval <= 0 {
		interval = s.cfg.AutoCollectInterval
	}
	sess.StartAutoCollect(interval)
	return nil
}

// StopAutoCollect stops timer-driven collection
func (s *SurveyService) StopAutoCollect() error {
	sess, err := s.active()
	if err != nil {
		return err
	}
	sess.StopAutoCollect()
	return nil
}

// Coverage derives the current coverage snapshot
func (s *SurveyService) Coverage() (models.CoverageSnapshot, error) {
	sess, err := s.active()
	if err != nil {
		return models.CoverageSnapshot{}, err
	}
	return sess.Coverage(), nil
}

// GridViewOfSession returns the session's cells with bounds and zoom
func (s *SurveyService) GridViewOfSession() (*GridView, error) {
	sess, err := s.active()
	if err != nil {
		return nil, err
	}
	return viewOf(sess.Cells()), nil
}

// NextTarget returns distance and bearing from the device to the next
// target cell center
func (s *SurveyService) NextTarget() (distance, bearing float64, ok bool, err error) {
	sess, err := s.active()
	if err != nil {
		return 0, 0, false, err
	}
	distance, bearing, ok = sess.NextTargetDistance()
	return distance, bearing, ok, nil
}

// ActiveProjectID returns the project of the running session
func (s *SurveyService) ActiveProjectID() (string, error) {
	sess, err := s.active()
	if err != nil {
		return "", err
	}
	return sess.ProjectID(), nil
}

// SessionReadings lists the readings recorded this session
func (s *SurveyService) SessionReadings() ([]models.MagneticReading, error) {
	sess, err := s.active()
	if err != nil {
		return nil, err
	}
	return sess.Readings(), nil
}

// DeleteReading removes a persisted reading. If the reading belongs to the
// active session's project, saved points are reloaded and the grid
// recounted, so deleted points stop counting toward completion.
func (s *SurveyService) DeleteReading(id int64) error {
	if err := s.readings.DeleteReading(id); err != nil {
		return err
	}

	sess, err := s.active()
	if err != nil {
		return nil // no session to refresh
	}

	stored, err := s.readings.GetReadingsForProject(sess.ProjectID())
	if err != nil {
		return err
	}
	sess.SyncSavedReadings(stored)
	return nil
}

func viewOf(cells []models.GridCell) *GridView {
	bounds := grid.BoundsOf(cells)
	return &GridView{
		Cells:  cells,
		Bounds: bounds,
		Zoom:   spatial.OptimalZoom(bounds),
	}
}
