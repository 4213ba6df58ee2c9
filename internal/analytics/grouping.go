package analytics

import (
	"time"

	"github.com/logiboard/tasks-backend-go/internal/models"
)

// KeyFunc extracts the grouping dimension of a task. The engine is
// instantiated with ByWorkCenter for the work-center views and ByDriver
// for the driver views instead of duplicating the algorithms per
// dimension.
type KeyFunc func(models.Task) string

// ByWorkCenter groups by the work-center label.
func ByWorkCenter(t models.Task) string { return t.WorkCenter }

// ByDriver groups by the driver name.
func ByDriver(t models.Task) string { return t.Driver }

// Group is one grouping bucket, in key first-appearance order.
type Group struct {
	Key   string
	Tasks []models.Task
}

// GroupBy buckets tasks by key, keeping buckets in the order each key was
// first encountered.
func GroupBy(tasks []models.Task, key KeyFunc) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, t := range tasks {
		k := key(t)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}

// FilterWindow keeps tasks whose creation date lies on or after the cutoff.
// Every chart and table operation applies this first.
func FilterWindow(tasks []models.Task, cutoff time.Time) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.CreationDate.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// FilterCompleted keeps completed tasks only.
func FilterCompleted(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			out = append(out, t)
		}
	}
	return out
}

// Durations collects task durations in seconds.
func Durations(tasks []models.Task) []float64 {
	vals := make([]float64, len(tasks))
	for i, t := range tasks {
		vals[i] = float64(t.DurationSecs)
	}
	return vals
}

// Distances collects task distances.
func Distances(tasks []models.Task) []float64 {
	vals := make([]float64, len(tasks))
	for i, t := range tasks {
		vals[i] = float64(t.Distance)
	}
	return vals
}

// QueueTimes collects queue times in seconds.
func QueueTimes(tasks []models.Task) []float64 {
	vals := make([]float64, len(tasks))
	for i, t := range tasks {
		vals[i] = float64(t.QueueTime)
	}
	return vals
}

func floorToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
