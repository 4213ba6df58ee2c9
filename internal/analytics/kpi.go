package analytics

import (
	"time"

	"github.com/logiboard/tasks-backend-go/internal/models"
	"github.com/logiboard/tasks-backend-go/internal/stats"
)

// ComputeStatBlock derives the five KPI scalars shown at the top of the
// dashboard. "Today" is the creation date of the table's first row (the
// freshest ingested task), which ties the dashboard's notion of current to
// the data rather than the viewer's clock. The daily and monthly averages
// exclude the current partial bucket so an incomplete day or month does
// not drag them down.
func ComputeStatBlock(tasks []models.Task) models.StatBlock {
	currentDate := tasks[0].CreationDate
	currentMonth := currentDate.Month()
	monthStart := time.Date(currentDate.Year(), currentMonth, 1, 0, 0, 0, 0, currentDate.Location())

	completed := FilterCompleted(tasks)

	var block models.StatBlock
	for _, t := range tasks {
		if t.CreationTime.Before(currentDate) {
			continue
		}
		switch t.Status {
		case models.StatusCompleted:
			block.CompletedToday++
		case models.StatusWaiting, models.StatusInProgress:
			block.CurrentlyQueued++
		}
	}
	for _, t := range completed {
		if !t.CreationTime.Before(monthStart) {
			block.CompletedMonth++
		}
	}

	block.AvgPerDay = int(meanGroupCount(completed, func(t models.Task) string {
		return t.CreationDate.Format("2006-01-02")
	}, currentDate.Format("2006-01-02")))

	block.AvgPerMonth = int(meanGroupCount(completed, func(t models.Task) string {
		return t.CreationTime.Month().String()
	}, currentMonth.String()))

	return block
}

// meanGroupCount groups tasks by key, drops the excluded (current,
// partial) bucket, and returns the mean bucket size.
func meanGroupCount(tasks []models.Task, key KeyFunc, exclude string) float64 {
	var counts []float64
	for _, g := range GroupBy(tasks, key) {
		if g.Key == exclude {
			continue
		}
		counts = append(counts, float64(len(g.Tasks)))
	}
	return stats.Mean(counts)
}
