package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/logiboard/tasks-backend-go/internal/models"
	"github.com/logiboard/tasks-backend-go/internal/stats"
)

// DriverDailyLines builds one line series per driver: completed tasks per
// start date within the window. Drivers appear in first-appearance order
// with their assigned colors; the date axis is the ascending union of all
// start dates seen.
func DriverDailyLines(tasks []models.Task, cutoff time.Time, lookback string, colors map[string]string) *models.ChartPayload {
	window := FilterCompleted(FilterWindow(tasks, cutoff))

	type dayCount map[string]float64
	perDriver := make(map[string]dayCount)
	var driverOrder []string
	dateSet := make(map[string]bool)

	for _, t := range window {
		day := floorToDay(t.StartTime).Format("2006-01-02")
		dateSet[day] = true
		if _, ok := perDriver[t.Driver]; !ok {
			perDriver[t.Driver] = make(dayCount)
			driverOrder = append(driverOrder, t.Driver)
		}
		perDriver[t.Driver][day]++
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := make([]models.ChartSeries, len(driverOrder))
	for i, driver := range driverOrder {
		values := make([]float64, len(dates))
		for j, d := range dates {
			values[j] = perDriver[driver][d]
		}
		series[i] = models.ChartSeries{Name: driver, Color: colors[driver], Values: values}
	}

	return &models.ChartPayload{
		Title:  fmt.Sprintf("Historical Driver Performances (%s)", lookback),
		Labels: dates,
		Series: series,
	}
}

// DriverTaskAverages reports, per driver in alphabetical order, the mean
// duration (minutes) and mean distance for one ranked task, along with the
// across-driver means used as reference lines.
func DriverTaskAverages(tasks []models.Task, encodedTask string, cutoff time.Time, lookback string, colors map[string]string) (*models.TaskAveragesPayload, error) {
	partNo, rank, err := ParseRankedTask(encodedTask)
	if err != nil {
		return nil, err
	}

	window := FilterCompleted(FilterWindow(tasks, cutoff))
	var matched []models.Task
	for _, t := range window {
		if t.PartNo == partNo {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("task %q has no completed rows in the selected window", partNo)
	}
	taskType := matched[0].TaskType

	groups := GroupBy(matched, ByDriver)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	drivers := make([]models.DriverTaskAverage, len(groups))
	durMeans := make([]float64, len(groups))
	distMeans := make([]float64, len(groups))
	for i, g := range groups {
		durMeans[i] = roundTo2(stats.Mean(Durations(g.Tasks)) / 60)
		distMeans[i] = roundTo2(stats.Mean(Distances(g.Tasks)))
		drivers[i] = models.DriverTaskAverage{
			Driver:      g.Key,
			Color:       colors[g.Key],
			AvgDuration: durMeans[i],
			AvgDistance: distMeans[i],
			TimesDone:   len(g.Tasks),
		}
	}

	return &models.TaskAveragesPayload{
		Title: fmt.Sprintf("Average Duration and Distance for Task %d - Completed %d Times - %s (%s)",
			rank, len(matched), taskType, lookback),
		Drivers:      drivers,
		MeanDuration: stats.Mean(durMeans),
		MeanDistance: stats.Mean(distMeans),
	}, nil
}

// DriverSharePie reports each driver's share of completed tasks in the
// window, in alphabetical order, with preformatted percentage strings.
func DriverSharePie(tasks []models.Task, cutoff time.Time, lookback string, colors map[string]string) *models.ChartPayload {
	window := FilterCompleted(FilterWindow(tasks, cutoff))
	groups := GroupBy(window, ByDriver)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	total := float64(len(window))
	labels := make([]string, len(groups))
	values := make([]float64, len(groups))
	sliceColors := make([]string, len(groups))
	text := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
		values[i] = float64(len(g.Tasks))
		sliceColors[i] = colors[g.Key]
		text[i] = fmt.Sprintf("%.2f%%", values[i]/total*100)
	}

	return &models.ChartPayload{
		Title:  fmt.Sprintf("Driver Task Percentages (%s)", lookback),
		Labels: labels,
		Series: []models.ChartSeries{{Name: "Tasks Completed", Values: values}},
		Colors: sliceColors,
		Text:   text,
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
