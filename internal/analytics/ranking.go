package analytics

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/logiboard/tasks-backend-go/internal/models"
	"github.com/logiboard/tasks-backend-go/internal/stats"
)

// topTaskLimit caps the ranked dropdown at the ten most frequent parts.
const topTaskLimit = 10

// distributionBins is the histogram resolution of the duration view.
const distributionBins = 15

// EncodeRankedTask fuses a rank and a part number into the single display
// string the UI widgets consume, e.g. "2. 74110-T20-A000-HCM". Rank and
// part stay separate everywhere inside the engine; this codec is the only
// boundary where they are packed, and ParseRankedTask is its inverse.
func EncodeRankedTask(rank int, partNo string) string {
	return fmt.Sprintf("%d. %s", rank, partNo)
}

var rankedTaskPattern = regexp.MustCompile(`^(\d+)\. (.*)$`)

// ParseRankedTask splits an encoded ranked-task string back into its part
// number and rank.
func ParseRankedTask(encoded string) (partNo string, rank int, err error) {
	m := rankedTaskPattern.FindStringSubmatch(encoded)
	if m == nil {
		return "", 0, fmt.Errorf("malformed ranked task %q", encoded)
	}
	if _, err := fmt.Sscanf(m[1], "%d", &rank); err != nil {
		return "", 0, fmt.Errorf("malformed ranked task %q", encoded)
	}
	return m[2], rank, nil
}

// TopTasks ranks part numbers by how often they appear in the window,
// descending, ties broken by first appearance in table order. At most ten
// are returned, encoded, with the top entry as the default selection.
func TopTasks(tasks []models.Task, cutoff time.Time) *models.RankedOptions {
	window := FilterWindow(tasks, cutoff)
	groups := GroupBy(window, func(t models.Task) string { return t.PartNo })
	sort.SliceStable(groups, func(i, j int) bool { return len(groups[i].Tasks) > len(groups[j].Tasks) })

	if len(groups) > topTaskLimit {
		groups = groups[:topTaskLimit]
	}

	opts := &models.RankedOptions{Options: make([]string, len(groups))}
	for i, g := range groups {
		opts.Options[i] = EncodeRankedTask(i+1, g.Key)
	}
	if len(opts.Options) > 0 {
		opts.Default = opts.Options[0]
	}
	return opts
}

// TaskDurationDistribution builds the completion-time histogram for one
// ranked task within the window, with the mean and median attached as
// reference values.
func TaskDurationDistribution(tasks []models.Task, encodedTask string, cutoff time.Time) (*models.DistributionPayload, error) {
	partNo, rank, err := ParseRankedTask(encodedTask)
	if err != nil {
		return nil, err
	}

	window := FilterWindow(tasks, cutoff)
	var matched []models.Task
	for _, t := range window {
		if t.PartNo == partNo {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("task %q has no rows in the selected window", partNo)
	}

	durations := Durations(matched)
	counts, edges := stats.Histogram(durations, distributionBins)

	return &models.DistributionPayload{
		Title: fmt.Sprintf("Task %d - Completed %d Times - %s",
			rank, len(matched), matched[0].TaskType),
		BinEdges:  edges,
		Counts:    counts,
		MeanSecs:  stats.Mean(durations),
		MedianSec: stats.Median(durations),
		Completed: len(matched),
		TaskType:  matched[0].TaskType,
	}, nil
}
