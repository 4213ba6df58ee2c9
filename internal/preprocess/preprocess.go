package preprocess

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/logiboard/tasks-backend-go/internal/models"
)

// Raw column labels expected from the data source. A missing label is a
// schema mismatch with the upstream query, surfaced as a load error, never
// as a data quality issue.
const (
	ColTaskNo       = "Task #"
	ColDriver       = "Driver"
	ColForklift     = "Forklift"
	ColWorkCenter   = "Workcenter"
	ColPartNo       = "Part No"
	ColStatus       = "Status"
	ColTaskType     = "Name"
	ColCreationTime = "Creation Time"
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColDuration     = "Duration (m:s)"
	ColDistance     = "Distance"
)

// Outlier-exclusion bounds. Rows outside them are dropped, not clamped.
const (
	MinDurationSecs = 10
	MaxDurationSecs = 3600
	MinDistance     = 10
	MaxDistance     = 3600
	MaxQueueTime    = 4500
)

// Timestamp layouts the source is known to emit.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02",
}

var requiredColumns = []string{
	ColTaskNo, ColDriver, ColForklift, ColWorkCenter, ColPartNo,
	ColStatus, ColTaskType, ColCreationTime, ColStartTime, ColEndTime,
	ColDuration, ColDistance,
}

// Preprocess cleans the raw load result into the canonical task table:
// rows with NULL cells are dropped, columns are projected onto canonical
// fields, the deprecated task type is removed, durations and timestamps
// are parsed, creation date and queue time are derived, and the outlier
// bounds are applied. Malformed individual fields drop their row silently;
// a missing column or a malformed non-null timestamp fails the batch.
// The source row order is preserved.
func Preprocess(raw *models.RawTable) ([]models.Task, error) {
	idx := make(map[string]int, len(requiredColumns))
	for _, label := range requiredColumns {
		i, ok := raw.ColumnIndex(label)
		if !ok {
			return nil, fmt.Errorf("source result is missing expected column %q", label)
		}
		idx[label] = i
	}

	tasks := make([]models.Task, 0, raw.Len())
	for n, row := range raw.Rows {
		if hasNull(row, idx) {
			continue
		}
		cell := func(label string) string { return row[idx[label]].String }

		taskType := cell(ColTaskType)
		if taskType == "" {
			taskType = models.TaskTypeUnknown
		}
		if taskType == models.TaskTypePartReturn {
			continue
		}

		creation, err := parseTimestamp(cell(ColCreationTime))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad creation time: %w", n, err)
		}
		start, err := parseTimestamp(cell(ColStartTime))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad start time: %w", n, err)
		}
		end, err := parseTimestamp(cell(ColEndTime))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad end time: %w", n, err)
		}

		distance, err := strconv.ParseFloat(cell(ColDistance), 64)
		if err != nil {
			// Malformed numeric cell, expected operational noise.
			continue
		}

		t := models.Task{
			TaskNo:       cell(ColTaskNo),
			Driver:       cell(ColDriver),
			Forklift:     cell(ColForklift),
			WorkCenter:   cell(ColWorkCenter),
			PartNo:       cell(ColPartNo),
			Status:       cell(ColStatus),
			TaskType:     taskType,
			CreationTime: creation,
			CreationDate: floorToDay(creation),
			StartTime:    start,
			EndTime:      end,
			QueueTime:    int64(start.Sub(creation).Seconds()),
			DurationSecs: parseDuration(cell(ColDuration)),
			Distance:     distance,
		}
		if isOutlier(t) {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func hasNull(row []sql.NullString, idx map[string]int) bool {
	for _, i := range idx {
		if !row[i].Valid {
			return true
		}
	}
	return false
}

func isOutlier(t models.Task) bool {
	if t.DurationSecs < MinDurationSecs || t.DurationSecs > MaxDurationSecs {
		return true
	}
	if t.Distance < MinDistance || t.Distance > MaxDistance {
		return true
	}
	return t.QueueTime > MaxQueueTime
}

// parseDuration converts a "minutes:seconds[.fraction]" string to whole
// seconds. Malformed text yields -1, which the duration bounds exclude.
func parseDuration(s string) int64 {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	mins, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return -1
	}
	secStr, _, _ := strings.Cut(parts[1], ".")
	secs, err := strconv.ParseInt(strings.TrimSpace(secStr), 10, 64)
	if err != nil {
		return -1
	}
	return mins*60 + secs
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func floorToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
