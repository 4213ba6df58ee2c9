package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/logiboard/tasks-backend-go/internal/models"
	"github.com/logiboard/tasks-backend-go/internal/stats"
)

// InsufficientData is the sentinel reported in place of an efficiency
// ratio that cannot be computed.
const InsufficientData = "Insufficient Data"

// efficiencyRatios renders the duration-per-task and distance-per-task
// ratios for one group. A zero sum means the metric carried no signal and
// yields the sentinel; a zero count would divide by zero and is guarded
// with the same sentinel rather than a separate error path.
func efficiencyRatios(g Group) (durRatio, distRatio string) {
	count := float64(len(g.Tasks))
	if count == 0 {
		return InsufficientData, InsufficientData
	}

	durRatio = InsufficientData
	if sum := stats.Sum(Durations(g.Tasks)); sum != 0 {
		durRatio = fmt.Sprintf("%.2f", sum/count)
	}
	distRatio = InsufficientData
	if sum := stats.Sum(Distances(g.Tasks)); sum != 0 {
		distRatio = fmt.Sprintf("%.2f", sum/count)
	}
	return durRatio, distRatio
}

// WorkCenterEfficiencyTable reports, per work center in ascending assembly
// order: total tasks, median queue time, and the two efficiency ratios.
func WorkCenterEfficiencyTable(tasks []models.Task, cutoff time.Time) (*models.TablePayload, error) {
	window := FilterWindow(tasks, cutoff)
	groups := GroupBy(window, ByWorkCenter)

	sorted, err := sortAndFilterWC(groups, WCRange{Lo: 0, Hi: int(^uint(0) >> 1)})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, len(sorted))
	for i, g := range sorted {
		durRatio, distRatio := efficiencyRatios(g.Group)
		rows[i] = []string{
			g.Key,
			fmt.Sprintf("%d", len(g.Tasks)),
			fmt.Sprintf("%.0f", stats.Median(QueueTimes(g.Tasks))),
			durRatio,
			distRatio,
		}
	}

	return &models.TablePayload{
		Columns: []string{"Work Center", "Total Tasks", "Avg Queue Time (s)",
			"Duration-Task Ratio", "Distance-Task Ratio"},
		Rows: rows,
	}, nil
}

// DriverEfficiencyTable reports, per driver in alphabetical order:
// completed task count and the two efficiency ratios.
func DriverEfficiencyTable(tasks []models.Task, cutoff time.Time) *models.TablePayload {
	window := FilterCompleted(FilterWindow(tasks, cutoff))
	groups := GroupBy(window, ByDriver)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	rows := make([][]string, len(groups))
	for i, g := range groups {
		durRatio, distRatio := efficiencyRatios(g)
		rows[i] = []string{
			g.Key,
			fmt.Sprintf("%d", len(g.Tasks)),
			durRatio,
			distRatio,
		}
	}

	return &models.TablePayload{
		Columns: []string{"Driver", "Total Tasks", "Duration-Task Ratio", "Distance-Task Ratio"},
		Rows:    rows,
	}
}
