package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiboard/tasks-backend-go/internal/models"
)

func TestRankedTaskCodecRoundTrip(t *testing.T) {
	for rank := 1; rank <= 10; rank++ {
		encoded := EncodeRankedTask(rank, "74110-T20-A000-HCM")
		partNo, parsedRank, err := ParseRankedTask(encoded)
		require.NoError(t, err)
		assert.Equal(t, "74110-T20-A000-HCM", partNo)
		assert.Equal(t, rank, parsedRank)
	}
}

func TestParseRankedTask(t *testing.T) {
	partNo, rank, err := ParseRankedTask("2. 74110-T20-A000-HCM")
	require.NoError(t, err)
	assert.Equal(t, "74110-T20-A000-HCM", partNo)
	assert.Equal(t, 2, rank)
}

func TestParseRankedTaskMalformed(t *testing.T) {
	for _, s := range []string{"", "74110-T20", "x. part", "3.part"} {
		_, _, err := ParseRankedTask(s)
		assert.Error(t, err, s)
	}
}

func TestTopTasksRankingAndDefault(t *testing.T) {
	tasks := []models.Task{
		mkTask(part("P-A")),
		mkTask(part("P-B")),
		mkTask(part("P-B")),
		mkTask(part("P-A")),
		mkTask(part("P-C")),
	}

	opts := TopTasks(tasks, day(2000, 1, 1))
	require.Equal(t, []string{"1. P-A", "2. P-B", "3. P-C"}, opts.Options)
	assert.Equal(t, "1. P-A", opts.Default)
}

func TestTopTasksTiesBreakByFirstAppearance(t *testing.T) {
	tasks := []models.Task{
		mkTask(part("P-LATE")),
		mkTask(part("P-EARLY")),
		mkTask(part("P-EARLY")),
		mkTask(part("P-LATE")),
	}

	opts := TopTasks(tasks, day(2000, 1, 1))
	// Equal counts: P-LATE appeared first in table order, so it ranks 1.
	assert.Equal(t, []string{"1. P-LATE", "2. P-EARLY"}, opts.Options)
}

func TestTopTasksCapsAtTen(t *testing.T) {
	var tasks []models.Task
	for i := 0; i < 14; i++ {
		tasks = append(tasks, mkTask(part(fmt.Sprintf("P-%02d", i))))
	}

	opts := TopTasks(tasks, day(2000, 1, 1))
	assert.Len(t, opts.Options, 10)
}

func TestTopTasksRespectsWindow(t *testing.T) {
	tasks := []models.Task{
		mkTask(part("P-NEW"), at("2024-03-10 08:00:00")),
		mkTask(part("P-OLD"), at("2023-01-01 08:00:00")),
	}

	opts := TopTasks(tasks, day(2024, 1, 1))
	assert.Equal(t, []string{"1. P-NEW"}, opts.Options)
}

func TestTaskDurationDistribution(t *testing.T) {
	tasks := []models.Task{
		mkTask(part("P-A"), dur(60)),
		mkTask(part("P-A"), dur(120)),
		mkTask(part("P-A"), dur(180)),
		mkTask(part("P-B"), dur(999)),
	}

	payload, err := TaskDurationDistribution(tasks, "1. P-A", day(2000, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, 3, payload.Completed)
	assert.Equal(t, 120.0, payload.MeanSecs)
	assert.Equal(t, 120.0, payload.MedianSec)
	assert.Equal(t, models.TaskTypeReplenishment, payload.TaskType)
	assert.Len(t, payload.BinEdges, distributionBins+1)

	total := 0
	for _, c := range payload.Counts {
		total += c
	}
	assert.Equal(t, 3, total)
	assert.Contains(t, payload.Title, "Task 1")
	assert.Contains(t, payload.Title, "Completed 3 Times")
}

func TestTaskDurationDistributionUnknownTask(t *testing.T) {
	_, err := TaskDurationDistribution([]models.Task{mkTask()}, "1. P-MISSING", day(2000, 1, 1))
	assert.Error(t, err)
}
