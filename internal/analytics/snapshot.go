package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/logiboard/tasks-backend-go/internal/models"
)

// Errors surfaced at snapshot build time. Both are configuration-grade
// failures: the dashboard must not start on top of them.
var (
	ErrEmptyTable     = errors.New("no tasks survived preprocessing")
	ErrNotNewestFirst = errors.New("task table is not ordered newest first")
)

// Lookback is one entry of the fixed time-window enumeration.
type Lookback struct {
	Label  string    `json:"label"`
	Cutoff time.Time `json:"cutoff"`
}

// Rollover is one entry of the fixed queue-time threshold enumeration.
type Rollover struct {
	Label   string `json:"label"`
	Seconds int64  `json:"seconds"`
}

// Snapshot is the immutable task table plus the derived lookup state that
// is fixed for the life of the load: lookback cutoffs, rollover periods,
// driver colors, and the KPI block. It is built once per load and shared
// read-only across requests.
type Snapshot struct {
	Tasks        []models.Task
	Lookbacks    []Lookback
	Rollovers    []Rollover
	DriverColors map[string]string
	StatBlock    models.StatBlock
	LatestDate   time.Time
	LoadedAt     time.Time
}

// NewSnapshot validates and freezes a preprocessed task table. The
// "row 0 is newest" contract from the load query is verified here rather
// than assumed: a table whose first row is not the most recent fails the
// load.
func NewSnapshot(tasks []models.Task) (*Snapshot, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyTable
	}
	for _, t := range tasks[1:] {
		if t.CreationTime.After(tasks[0].CreationTime) {
			return nil, ErrNotNewestFirst
		}
	}

	colors, err := AssignDriverColors(tasks)
	if err != nil {
		return nil, err
	}

	latest := tasks[0].CreationDate
	return &Snapshot{
		Tasks:        tasks,
		Lookbacks:    buildLookbacks(latest),
		Rollovers:    buildRollovers(),
		DriverColors: colors,
		StatBlock:    ComputeStatBlock(tasks),
		LatestDate:   latest,
		LoadedAt:     time.Now(),
	}, nil
}

// fullHistoryCutoff predates every task the operation has ever recorded.
var fullHistoryCutoff = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func buildLookbacks(latest time.Time) []Lookback {
	days := func(n int) time.Time { return latest.AddDate(0, 0, -n) }
	return []Lookback{
		{Label: "Full History", Cutoff: fullHistoryCutoff},
		{Label: "Past 365-Days", Cutoff: days(365)},
		{Label: "Past 90-Days", Cutoff: days(90)},
		{Label: "Past 60-Days", Cutoff: days(60)},
		{Label: "Past 30-Days", Cutoff: days(30)},
	}
}

func buildRollovers() []Rollover {
	return []Rollover{
		{Label: "2-Hours", Seconds: 7200},
		{Label: "1.5-Hours", Seconds: 5400},
		{Label: "1-Hour", Seconds: 3600},
		{Label: "30-Mins", Seconds: 1800},
		{Label: "15-Mins", Seconds: 900},
	}
}

// CutoffFor resolves a lookback label to its window cutoff.
func (s *Snapshot) CutoffFor(label string) (time.Time, error) {
	for _, lb := range s.Lookbacks {
		if lb.Label == label {
			return lb.Cutoff, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown lookback period %q", label)
}

// RolloverFor resolves a rollover label to its threshold in seconds.
func (s *Snapshot) RolloverFor(label string) (int64, error) {
	for _, r := range s.Rollovers {
		if r.Label == label {
			return r.Seconds, nil
		}
	}
	return 0, fmt.Errorf("unknown rollover period %q", label)
}

// LookbackLabels returns the ordered window labels for the UI.
func (s *Snapshot) LookbackLabels() []string {
	labels := make([]string, len(s.Lookbacks))
	for i, lb := range s.Lookbacks {
		labels[i] = lb.Label
	}
	return labels
}

// RolloverLabels returns the ordered threshold labels for the UI.
func (s *Snapshot) RolloverLabels() []string {
	labels := make([]string, len(s.Rollovers))
	for i, r := range s.Rollovers {
		labels[i] = r.Label
	}
	return labels
}
