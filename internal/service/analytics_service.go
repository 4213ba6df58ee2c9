package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/logiboard/tasks-backend-go/internal/analytics"
	"github.com/logiboard/tasks-backend-go/internal/models"
	"github.com/logiboard/tasks-backend-go/internal/preprocess"
	"github.com/logiboard/tasks-backend-go/internal/repository"
)

// ErrBadRequest marks failures caused by the caller's parameters (unknown
// lookback or rollover label, unknown ranked task) as opposed to engine or
// load failures. Handlers branch on it for the status code.
var ErrBadRequest = errors.New("bad request")

// AnalyticsService owns the immutable task snapshot and exposes the
// aggregation engine per view. The snapshot is loaded once at startup and
// swapped atomically on an explicit reload; every read works against
// whichever snapshot was current when the request arrived.
type AnalyticsService struct {
	repo      *repository.TaskRepository
	assetsDir string

	reloadMu sync.Mutex // serializes Load/Reload, never held by readers
	snap     atomic.Pointer[analytics.Snapshot]

	readingGuide string
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo *repository.TaskRepository, assetsDir string) *AnalyticsService {
	return &AnalyticsService{repo: repo, assetsDir: assetsDir}
}

// Load performs the bulk load, runs preprocessing, and freezes the
// snapshot. A failure leaves any previously loaded snapshot in place.
func (s *AnalyticsService) Load(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	raw, err := s.repo.LoadRawTasks(ctx)
	if err != nil {
		return err
	}

	tasks, err := preprocess.Preprocess(raw)
	if err != nil {
		return err
	}

	snap, err := analytics.NewSnapshot(tasks)
	if err != nil {
		return err
	}

	guide, err := os.ReadFile(filepath.Join(s.assetsDir, "reading_guide.md"))
	if err != nil {
		return fmt.Errorf("failed to read reading guide: %w", err)
	}

	s.readingGuide = string(guide)
	s.snap.Store(snap)
	log.Printf("Snapshot loaded: %d tasks, latest date %s",
		len(snap.Tasks), snap.LatestDate.Format("2006-01-02"))
	return nil
}

// Reload rebuilds the snapshot on operator request.
func (s *AnalyticsService) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Snapshot returns the current immutable snapshot.
func (s *AnalyticsService) Snapshot() *analytics.Snapshot {
	return s.snap.Load()
}

// ReadingGuide returns the opaque reference document.
func (s *AnalyticsService) ReadingGuide() string {
	return s.readingGuide
}

// StatBlock returns the KPI block frozen at load time.
func (s *AnalyticsService) StatBlock() models.StatBlock {
	return s.Snapshot().StatBlock
}

// LookbackLabels returns the ordered lookback window labels.
func (s *AnalyticsService) LookbackLabels() []string {
	return s.Snapshot().LookbackLabels()
}

// RolloverLabels returns the ordered rollover threshold labels.
func (s *AnalyticsService) RolloverLabels() []string {
	return s.Snapshot().RolloverLabels()
}

// cutoff pairs a resolved window cutoff with its display label.
type cutoff struct {
	at    time.Time
	label string
}

func (s *AnalyticsService) cutoff(snap *analytics.Snapshot, lookback string) (cutoff, error) {
	c, err := snap.CutoffFor(lookback)
	if err != nil {
		return cutoff{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return cutoff{at: c, label: lookback}, nil
}

// WorkCenterTaskBars returns completed-task counts per work center,
// optionally split by task type.
func (s *AnalyticsService) WorkCenterTaskBars(lookback string, wcRange analytics.WCRange, split bool) (*models.ChartPayload, error) {
	snap := s.Snapshot()
	c, err := s.cutoff(snap, lookback)
	if err != nil {
		return nil, err
	}
	if split {
		return analytics.WorkCenterTaskTypeBars(snap.Tasks, wcRange, c.at, c.label)
	}
	return analytics.WorkCenterTaskBars(snap.Tasks, wcRange, c.at, c.label)
}

// WorkCenterQueueBars returns median queue times per work center, or
// rollover counts when a rollover label is given.
func (s *AnalyticsService) WorkCenterQueueBars(lookback string, wcRange analytics.WCRange, rollover string) (*models.ChartPayload, error) {
	snap := s.Snapshot()
	c, err := s.cutoff(snap, lookback)
	if err != nil {
		return nil, err
	}
	if rollover == "" {
		return analytics.WorkCenterQueueBars(snap.Tasks, wcRange, c.at, c.label)
	}
	secs, err := snap.RolloverFor(rollover)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return analytics.WorkCenterRolloverBars(snap.Tasks, secs, wcRange, c.at, c.label)
}

// TaskTypePie returns the task-type distribution for the window.
func (s *AnalyticsService) TaskTypePie(lookback string) (*models.ChartPayload, error) {
	snap := s.Snapshot()
	c, err := s.cutoff(snap, lookback)
	if err != nil {
		return nil, err
	}
	return analytics.TaskTypePie(snap.Tasks, c.at, c.label), nil
}

// WorkCenterEfficiency returns the per-work-center efficiency table.
func (s *AnalyticsService) WorkCenterEfficiency(lookback string) (*models.TablePayload, error) {
	snap := s.Snapshot()
	c, err := s.cutoff(snap, lookback)
	if err != nil {
		return nil, err
	}
	return analytics.WorkCenterEfficiencyTable(snap.Tasks, c.at)
}

// TopTasks returns the ranked task dropdown options for the window.
func (s *AnalyticsService) TopTasks(lookback string) (*models.RankedOptions, error) {
	snap := s.Snapshot()
	c, err := s.cutoff(snap, lookback)
	if err != nil {
		return nil, err
	}
	return analytics.TopTasks(snap.Tasks, c.at), nil
}

// TaskDistribution returns the duration histogram for a ranked task.
func (s *AnalyticsService) TaskDistribution(lookback, encodedTask string) (*models.DistributionPayload, error) {
	snap := s.Snapshot()
	c, err := s.cutoff(snap, lookback)
	if err != nil {
		return nil, err
	}
	payload, err := analytics.TaskDurationDistribution(snap.Tasks, encodedTask, c.at)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return payload, nil
}

// DriverDaily returns per-driver completed-task lines per day.
func (s *AnalyticsService) DriverDaily(lookback string) (*models.ChartPayload, error) {
	snap := s.Snapshot()
	c, err := s.cutoff(snap, lookback)
	if err != nil {
		return nil, err
	}
	return analytics.DriverDailyLines(snap.Tasks, c.at, c.label, snap.DriverColors), nil
}

// DriverTaskAverages returns per-driver duration/distance averages for a
// ranked task.
func (s *AnalyticsService) DriverTaskAverages(lookback, encodedTask string) (*models.TaskAveragesPayload, error) {
	snap := s.Snapshot()
	c, err := s.cutoff(snap, lookback)
	if err != nil {
		return nil, err
	}
	payload, err := analytics.DriverTaskAverages(snap.Tasks, encodedTask, c.at, c.label, snap.DriverColors)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return payload, nil
}

// DriverShare returns each driver's share of completed tasks.
func (s *AnalyticsService) DriverShare(lookback string) (*models.ChartPayload, error) {
	snap := s.Snapshot()
	c, err := s.cutoff(snap, lookback)
	if err != nil {
		return nil, err
	}
	return analytics.DriverSharePie(snap.Tasks, c.at, c.label, snap.DriverColors), nil
}

// DriverEfficiency returns the per-driver efficiency table.
func (s *AnalyticsService) DriverEfficiency(lookback string) (*models.TablePayload, error) {
	snap := s.Snapshot()
	c, err := s.cutoff(snap, lookback)
	if err != nil {
		return nil, err
	}
	return analytics.DriverEfficiencyTable(snap.Tasks, c.at), nil
}
