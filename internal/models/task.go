package models

import "time"

// Status labels decoded by the load query (tri-state).
const (
	StatusWaiting    = "Waiting"
	StatusInProgress = "In-Progress"
	StatusCompleted  = "Completed"
)

// Task type labels decoded by the load query.
// Part Return is deprecated upstream and removed during preprocessing.
const (
	TaskTypePutAway       = "F/G Put Away"
	TaskTypeReplenishment = "Replenishment"
	TaskTypePartReturn    = "Part Return"
	TaskTypeFGReturn      = "FG Return"
	TaskTypeContainerMove = "Container Move"
	TaskTypeUnknown       = "Unknown"
)

// Task is one row of the canonical in-memory task table produced by
// preprocessing. Rows are never mutated after the snapshot is built.
type Task struct {
	TaskNo       string    `json:"task_no"`
	Driver       string    `json:"driver"`
	Forklift     string    `json:"forklift,omitempty"` // empty when no vehicle was assigned
	WorkCenter   string    `json:"work_center"`
	PartNo       string    `json:"part_no"`
	Status       string    `json:"status"`
	TaskType     string    `json:"task_type"`
	CreationTime time.Time `json:"creation_time"`
	CreationDate time.Time `json:"creation_date"` // CreationTime floored to midnight
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	QueueTime    int64     `json:"queue_time_s"` // whole seconds between creation and start
	DurationSecs int64     `json:"duration_s"`   // parsed from the raw "M:S" string
	Distance     float64   `json:"distance"`
}
