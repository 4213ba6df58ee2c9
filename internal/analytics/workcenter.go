package analytics

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/logiboard/tasks-backend-go/internal/models"
	"github.com/logiboard/tasks-backend-go/internal/stats"
)

// WCRange is an inclusive assembly-number range filter for work-center
// views.
type WCRange struct {
	Lo int
	Hi int
}

// Contains reports whether an assembly number falls in the range.
func (r WCRange) Contains(n int) bool { return n >= r.Lo && n <= r.Hi }

// queueDisplayCap excludes stale queue-time stragglers from the median
// queue chart, matching the historical display behavior.
const queueDisplayCap = 10000

var assemblyNoPattern = regexp.MustCompile(`[0-9]+`)

// ParseAssemblyNo extracts the numeric token embedded in a work-center
// label. Every label in the fixed enumeration is expected to carry one;
// a label without it is a data-contract violation, not user input.
func ParseAssemblyNo(label string) (int, error) {
	token := assemblyNoPattern.FindString(label)
	if token == "" {
		return 0, fmt.Errorf("work center label %q has no assembly number", label)
	}
	var n int
	if _, err := fmt.Sscanf(token, "%d", &n); err != nil {
		return 0, fmt.Errorf("work center label %q has no assembly number", label)
	}
	return n, nil
}

// ShorthandWC abbreviates a work-center label for chart axes.
func ShorthandWC(label string) string {
	return strings.Replace(label, "Assembly", "A", 1)
}

// wcGroup pairs a group with its parsed assembly number.
type wcGroup struct {
	Group
	assembly int
}

// sortAndFilterWC orders groups by ascending assembly number and applies
// the range filter. Display order is driven by the embedded number, never
// by the label's string sort.
func sortAndFilterWC(groups []Group, wcRange WCRange) ([]wcGroup, error) {
	out := make([]wcGroup, 0, len(groups))
	for _, g := range groups {
		n, err := ParseAssemblyNo(g.Key)
		if err != nil {
			return nil, err
		}
		if wcRange.Contains(n) {
			out = append(out, wcGroup{Group: g, assembly: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].assembly < out[j].assembly })
	return out, nil
}

// WorkCenterTaskBars counts completed tasks per work center within the
// window. The y-axis ceiling is taken before range filtering so the scale
// stays comparable while the operator slides the range.
func WorkCenterTaskBars(tasks []models.Task, wcRange WCRange, cutoff time.Time, lookback string) (*models.ChartPayload, error) {
	window := FilterCompleted(FilterWindow(tasks, cutoff))
	groups := GroupBy(window, ByWorkCenter)

	var yMax float64
	for _, g := range groups {
		if c := float64(len(g.Tasks)); c > yMax {
			yMax = c
		}
	}

	sorted, err := sortAndFilterWC(groups, wcRange)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(sorted))
	values := make([]float64, len(sorted))
	for i, g := range sorted {
		labels[i] = ShorthandWC(g.Key)
		values[i] = float64(len(g.Tasks))
	}

	return &models.ChartPayload{
		Title:  fmt.Sprintf("Work Centers and Completed Tasks (%s)", lookback),
		Labels: labels,
		Series: []models.ChartSeries{{Name: "Tasks Completed", Values: values}},
		YMax:   yMax,
	}, nil
}

// WorkCenterTaskTypeBars counts completed tasks per work center split by
// task type, one series per type in its preset color.
func WorkCenterTaskTypeBars(tasks []models.Task, wcRange WCRange, cutoff time.Time, lookback string) (*models.ChartPayload, error) {
	window := FilterCompleted(FilterWindow(tasks, cutoff))
	sorted, err := sortAndFilterWC(GroupBy(window, ByWorkCenter), wcRange)
	if err != nil {
		return nil, err
	}

	var typeOrder []string
	seen := make(map[string]bool)
	for _, t := range window {
		if !seen[t.TaskType] {
			seen[t.TaskType] = true
			typeOrder = append(typeOrder, t.TaskType)
		}
	}
	sort.Strings(typeOrder)

	labels := make([]string, len(sorted))
	counts := make(map[string][]float64, len(typeOrder))
	for _, tt := range typeOrder {
		counts[tt] = make([]float64, len(sorted))
	}
	for i, g := range sorted {
		labels[i] = ShorthandWC(g.Key)
		for _, t := range g.Tasks {
			counts[t.TaskType][i]++
		}
	}

	series := make([]models.ChartSeries, len(typeOrder))
	for i, tt := range typeOrder {
		series[i] = models.ChartSeries{Name: tt, Color: taskTypeColors[tt], Values: counts[tt]}
	}

	return &models.ChartPayload{
		Title:  fmt.Sprintf("Work Centers and Task Types Completed (%s)", lookback),
		Labels: labels,
		Series: series,
	}, nil
}

// WorkCenterQueueBars reports the median queue time per work center within
// the window.
func WorkCenterQueueBars(tasks []models.Task, wcRange WCRange, cutoff time.Time, lookback string) (*models.ChartPayload, error) {
	window := FilterWindow(tasks, cutoff)
	capped := make([]models.Task, 0, len(window))
	for _, t := range window {
		if t.QueueTime <= queueDisplayCap {
			capped = append(capped, t)
		}
	}

	sorted, err := sortAndFilterWC(GroupBy(capped, ByWorkCenter), wcRange)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(sorted))
	values := make([]float64, len(sorted))
	for i, g := range sorted {
		labels[i] = ShorthandWC(g.Key)
		values[i] = stats.Median(QueueTimes(g.Tasks))
	}

	return &models.ChartPayload{
		Title:  fmt.Sprintf("Work Centers and Average Queue Times (%s)", lookback),
		Labels: labels,
		Series: []models.ChartSeries{{Name: "Average Queue Time", Values: values}},
	}, nil
}

// WorkCenterRolloverBars counts tasks whose queue time met or exceeded the
// rollover threshold, per work center. Work centers with no qualifying
// tasks appear explicitly with a zero count: the full enumeration of known
// centers is always represented.
func WorkCenterRolloverBars(tasks []models.Task, rolloverSecs int64, wcRange WCRange, cutoff time.Time, lookback string) (*models.ChartPayload, error) {
	window := FilterWindow(tasks, cutoff)

	counts := make(map[string]int)
	for _, t := range window {
		if t.QueueTime >= rolloverSecs {
			counts[t.WorkCenter]++
		}
	}

	// Zero-fill from the full table so every known center shows up.
	groups := make([]Group, 0)
	for _, g := range GroupBy(tasks, ByWorkCenter) {
		groups = append(groups, Group{Key: g.Key})
	}
	sorted, err := sortAndFilterWC(groups, wcRange)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(sorted))
	values := make([]float64, len(sorted))
	for i, g := range sorted {
		labels[i] = ShorthandWC(g.Key)
		values[i] = float64(counts[g.Key])
	}

	return &models.ChartPayload{
		Title:  fmt.Sprintf("Work Centers and Task Rollover (%s)", lookback),
		Labels: labels,
		Series: []models.ChartSeries{{Name: "Tasks Over Rollover Period", Values: values}},
	}, nil
}

// TaskTypePie reports the distribution of task types across the window,
// ordered by descending count, with preformatted percentage strings.
func TaskTypePie(tasks []models.Task, cutoff time.Time, lookback string) *models.ChartPayload {
	window := FilterWindow(tasks, cutoff)
	groups := GroupBy(window, func(t models.Task) string { return t.TaskType })
	sort.SliceStable(groups, func(i, j int) bool { return len(groups[i].Tasks) > len(groups[j].Tasks) })

	total := float64(len(window))
	labels := make([]string, len(groups))
	values := make([]float64, len(groups))
	colors := make([]string, len(groups))
	text := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
		values[i] = float64(len(g.Tasks))
		colors[i] = taskTypeColors[g.Key]
		text[i] = fmt.Sprintf("%.2f%%", values[i]/total*100)
	}

	return &models.ChartPayload{
		Title:  fmt.Sprintf("Task Type Percentages (%s)", lookback),
		Labels: labels,
		Series: []models.ChartSeries{{Name: "Tasks", Values: values}},
		Colors: colors,
		Text:   text,
	}
}
