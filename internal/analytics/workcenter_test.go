package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiboard/tasks-backend-go/internal/models"
)

func TestParseAssemblyNo(t *testing.T) {
	n, err := ParseAssemblyNo("Assembly 12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = ParseAssemblyNo("Dockyard")
	assert.Error(t, err)
}

func TestShorthandWC(t *testing.T) {
	assert.Equal(t, "A 12", ShorthandWC("Assembly 12"))
	assert.Equal(t, "Shipping", ShorthandWC("Shipping"))
}

func TestWorkCenterTaskBars(t *testing.T) {
	tasks := []models.Task{
		mkTask(wc("Assembly 12")),
		mkTask(wc("Assembly 3")),
		mkTask(wc("Assembly 3")),
		mkTask(wc("Assembly 3"), status(models.StatusWaiting)),
	}

	chart, err := WorkCenterTaskBars(tasks, WCRange{Lo: 0, Hi: 9999}, day(2000, 1, 1), "Full History")
	require.NoError(t, err)

	// Ascending assembly order with shorthand labels, completed only.
	assert.Equal(t, []string{"A 3", "A 12"}, chart.Labels)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, []float64{2, 1}, chart.Series[0].Values)
	assert.Equal(t, 2.0, chart.YMax)
	assert.Contains(t, chart.Title, "Full History")
}

func TestWorkCenterTaskBarsYMaxIgnoresRangeFilter(t *testing.T) {
	tasks := []models.Task{
		mkTask(wc("Assembly 3")),
		mkTask(wc("Assembly 3")),
		mkTask(wc("Assembly 3")),
		mkTask(wc("Assembly 12")),
	}

	chart, err := WorkCenterTaskBars(tasks, WCRange{Lo: 10, Hi: 20}, day(2000, 1, 1), "Full History")
	require.NoError(t, err)

	// Assembly 3 is filtered out of the bars but still anchors the ceiling.
	assert.Equal(t, []string{"A 12"}, chart.Labels)
	assert.Equal(t, 3.0, chart.YMax)
}

func TestWorkCenterTaskTypeBarsZeroFills(t *testing.T) {
	tasks := []models.Task{
		mkTask(wc("Assembly 1"), taskType(models.TaskTypeReplenishment)),
		mkTask(wc("Assembly 2"), taskType(models.TaskTypeContainerMove)),
	}

	chart, err := WorkCenterTaskTypeBars(tasks, WCRange{Lo: 0, Hi: 9999}, day(2000, 1, 1), "Full History")
	require.NoError(t, err)

	assert.Equal(t, []string{"A 1", "A 2"}, chart.Labels)
	require.Len(t, chart.Series, 2)

	// Every series covers every center, padded with zeros.
	byName := map[string][]float64{}
	for _, s := range chart.Series {
		byName[s.Name] = s.Values
	}
	assert.Equal(t, []float64{1, 0}, byName[models.TaskTypeReplenishment])
	assert.Equal(t, []float64{0, 1}, byName[models.TaskTypeContainerMove])
}

func TestWorkCenterQueueBarsMedianAndCap(t *testing.T) {
	tasks := []models.Task{
		mkTask(wc("Assembly 1"), queue(100)),
		mkTask(wc("Assembly 1"), queue(300)),
		mkTask(wc("Assembly 1"), queue(200)),
		mkTask(wc("Assembly 1"), queue(10001)),
	}

	chart, err := WorkCenterQueueBars(tasks, WCRange{Lo: 0, Hi: 9999}, day(2000, 1, 1), "Full History")
	require.NoError(t, err)
	require.Len(t, chart.Series, 1)

	// The 10001s straggler is excluded before the median is taken.
	assert.Equal(t, []float64{200}, chart.Series[0].Values)
}

func TestWorkCenterRolloverBarsZeroFillsKnownCenters(t *testing.T) {
	tasks := []models.Task{
		mkTask(wc("Assembly 1"), queue(4000)),
		mkTask(wc("Assembly 2"), queue(100)),
	}

	chart, err := WorkCenterRolloverBars(tasks, 3600, WCRange{Lo: 0, Hi: 9999}, day(2000, 1, 1), "Full History")
	require.NoError(t, err)

	assert.Equal(t, []string{"A 1", "A 2"}, chart.Labels)
	assert.Equal(t, []float64{1, 0}, chart.Series[0].Values)
}

func TestWorkCenterRolloverThresholdIsInclusive(t *testing.T) {
	tasks := []models.Task{mkTask(wc("Assembly 1"), queue(3600))}

	chart, err := WorkCenterRolloverBars(tasks, 3600, WCRange{Lo: 0, Hi: 9999}, day(2000, 1, 1), "Full History")
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, chart.Series[0].Values)
}

func TestTaskTypePie(t *testing.T) {
	tasks := []models.Task{
		mkTask(taskType(models.TaskTypeContainerMove)),
		mkTask(taskType(models.TaskTypeReplenishment)),
		mkTask(taskType(models.TaskTypeReplenishment)),
		mkTask(taskType(models.TaskTypeContainerMove)),
		mkTask(taskType(models.TaskTypeReplenishment)),
	}

	chart := TaskTypePie(tasks, day(2000, 1, 1), "Full History")

	assert.Equal(t, []string{models.TaskTypeReplenishment, models.TaskTypeContainerMove}, chart.Labels)
	assert.Equal(t, []float64{3, 2}, chart.Series[0].Values)
	assert.Equal(t, []string{"60.00%", "40.00%"}, chart.Text)
	assert.NotEmpty(t, chart.Colors[0])
}
