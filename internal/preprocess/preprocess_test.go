package preprocess

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiboard/tasks-backend-go/internal/models"
)

var testColumns = []string{
	ColTaskNo, ColDriver, ColForklift, ColWorkCenter, ColPartNo,
	ColStatus, ColTaskType, ColCreationTime, ColStartTime, ColEndTime,
	ColDuration, ColDistance,
}

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

// testRow builds a well-formed raw row, with overrides keyed by column
// label. An override with Valid=false injects a NULL.
func testRow(overrides map[string]sql.NullString) []sql.NullString {
	defaults := map[string]sql.NullString{
		ColTaskNo:       ns("1"),
		ColDriver:       ns("Alice"),
		ColForklift:     ns("FL-01"),
		ColWorkCenter:   ns("Assembly 12"),
		ColPartNo:       ns("74110-T20-A000-HCM"),
		ColStatus:       ns("Completed"),
		ColTaskType:     ns("Replenishment"),
		ColCreationTime: ns("2024-03-01 08:00:00"),
		ColStartTime:    ns("2024-03-01 08:05:00"),
		ColEndTime:      ns("2024-03-01 08:10:00"),
		ColDuration:     ns("5:00"),
		ColDistance:     ns("100"),
	}
	for k, v := range overrides {
		defaults[k] = v
	}
	row := make([]sql.NullString, len(testColumns))
	for i, col := range testColumns {
		row[i] = defaults[col]
	}
	return row
}

func testTable(rows ...[]sql.NullString) *models.RawTable {
	return &models.RawTable{Columns: testColumns, Rows: rows}
}

func TestPreprocessProjectsValidRow(t *testing.T) {
	tasks, err := Preprocess(testTable(testRow(nil)))
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Equal(t, "1", task.TaskNo)
	assert.Equal(t, "Alice", task.Driver)
	assert.Equal(t, "FL-01", task.Forklift)
	assert.Equal(t, "Assembly 12", task.WorkCenter)
	assert.Equal(t, "74110-T20-A000-HCM", task.PartNo)
	assert.Equal(t, models.StatusCompleted, task.Status)
	assert.Equal(t, models.TaskTypeReplenishment, task.TaskType)
	assert.Equal(t, int64(300), task.DurationSecs)
	assert.Equal(t, int64(300), task.QueueTime)
	assert.Equal(t, 100.0, task.Distance)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), task.CreationDate)
}

func TestPreprocessDropsNullCells(t *testing.T) {
	tasks, err := Preprocess(testTable(
		testRow(map[string]sql.NullString{ColForklift: {}}),
		testRow(map[string]sql.NullString{ColDriver: {}}),
		testRow(nil),
	))
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestPreprocessMissingColumnIsFatal(t *testing.T) {
	table := testTable(testRow(nil))
	table.Columns = table.Columns[:len(table.Columns)-1] // drop Distance

	_, err := Preprocess(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColDistance)
}

func TestPreprocessDropsDeprecatedTaskType(t *testing.T) {
	tasks, err := Preprocess(testTable(
		testRow(map[string]sql.NullString{ColTaskType: ns(models.TaskTypePartReturn)}),
		testRow(nil),
	))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.NotEqual(t, models.TaskTypePartReturn, tasks[0].TaskType)
}

func TestPreprocessEmptyTaskTypeFallsBackToUnknown(t *testing.T) {
	tasks, err := Preprocess(testTable(
		testRow(map[string]sql.NullString{ColTaskType: ns("")}),
	))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskTypeUnknown, tasks[0].TaskType)
}

func TestDurationParsing(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"1:05.230", 65},
		{"10:00", 600},
		{"0:59", 59},
		{"60:00", 3600},
	}
	for _, tt := range tests {
		tasks, err := Preprocess(testTable(
			testRow(map[string]sql.NullString{ColDuration: ns(tt.raw)}),
		))
		require.NoError(t, err, tt.raw)
		require.Len(t, tasks, 1, tt.raw)
		assert.Equal(t, tt.want, tasks[0].DurationSecs, tt.raw)
	}
}

func TestMalformedDurationDropsRowSilently(t *testing.T) {
	for _, raw := range []string{"garbage", "500", "a:b", ""} {
		tasks, err := Preprocess(testTable(
			testRow(map[string]sql.NullString{ColDuration: ns(raw)}),
		))
		require.NoError(t, err, raw)
		assert.Empty(t, tasks, raw)
	}
}

func TestOutlierBoundsDropNotClamp(t *testing.T) {
	tests := []struct {
		name     string
		override map[string]sql.NullString
	}{
		{"duration below 10s", map[string]sql.NullString{ColDuration: ns("0:05")}},
		{"duration above 3600s", map[string]sql.NullString{ColDuration: ns("61:00")}},
		{"distance below 10", map[string]sql.NullString{ColDistance: ns("5")}},
		{"distance above 3600", map[string]sql.NullString{ColDistance: ns("4000")}},
		{"queue time above 4500s", map[string]sql.NullString{
			ColStartTime: ns("2024-03-01 10:00:00"), // 7200s after creation
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := Preprocess(testTable(testRow(tt.override)))
			require.NoError(t, err)
			assert.Empty(t, tasks)
		})
	}
}

func TestMalformedTimestampFailsBatch(t *testing.T) {
	_, err := Preprocess(testTable(
		testRow(map[string]sql.NullString{ColCreationTime: ns("yesterday")}),
	))
	assert.Error(t, err)
}

func TestPreprocessPreservesRowOrder(t *testing.T) {
	tasks, err := Preprocess(testTable(
		testRow(map[string]sql.NullString{
			ColTaskNo:       ns("2"),
			ColCreationTime: ns("2024-03-02 08:00:00"),
			ColStartTime:    ns("2024-03-02 08:05:00"),
			ColEndTime:      ns("2024-03-02 08:10:00"),
		}),
		testRow(nil),
	))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "2", tasks[0].TaskNo)
	assert.Equal(t, "1", tasks[1].TaskNo)
}

func TestCreationDateTruncationIsIdempotent(t *testing.T) {
	tasks, err := Preprocess(testTable(testRow(nil)))
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	date := tasks[0].CreationDate
	assert.Equal(t, date, floorToDay(date))
	assert.Equal(t, date, floorToDay(tasks[0].CreationTime))
}
