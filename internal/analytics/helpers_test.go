package analytics

import (
	"time"

	"github.com/logiboard/tasks-backend-go/internal/models"
)

type taskOpt func(*models.Task)

func at(ts string) taskOpt {
	return func(t *models.Task) {
		parsed, err := time.Parse("2006-01-02 15:04:05", ts)
		if err != nil {
			panic(err)
		}
		t.CreationTime = parsed
		t.StartTime = parsed.Add(time.Minute)
	}
}

func by(driver string) taskOpt { return func(t *models.Task) { t.Driver = driver } }

func wc(center string) taskOpt { return func(t *models.Task) { t.WorkCenter = center } }

func part(p string) taskOpt { return func(t *models.Task) { t.PartNo = p } }

func status(s string) taskOpt { return func(t *models.Task) { t.Status = s } }

func taskType(s string) taskOpt { return func(t *models.Task) { t.TaskType = s } }

func dur(secs int64) taskOpt { return func(t *models.Task) { t.DurationSecs = secs } }

func dist(d float64) taskOpt { return func(t *models.Task) { t.Distance = d } }

func queue(secs int64) taskOpt { return func(t *models.Task) { t.QueueTime = secs } }

// mkTask builds a plausible completed task and applies overrides. The
// creation date is always rederived from the creation time.
func mkTask(opts ...taskOpt) models.Task {
	t := models.Task{
		TaskNo:       "1",
		Driver:       "Alice",
		WorkCenter:   "Assembly 1",
		PartNo:       "P-100",
		Status:       models.StatusCompleted,
		TaskType:     models.TaskTypeReplenishment,
		CreationTime: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		DurationSecs: 120,
		Distance:     50,
		QueueTime:    60,
	}
	t.StartTime = t.CreationTime.Add(time.Minute)
	for _, opt := range opts {
		opt(&t)
	}
	t.CreationDate = floorToDay(t.CreationTime)
	t.EndTime = t.StartTime.Add(time.Duration(t.DurationSecs) * time.Second)
	return t
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
