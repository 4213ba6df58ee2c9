package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/logiboard/tasks-backend-go/internal/models"
)

// TaskRepository handles the bulk load of the denormalized task dataset.
// It owns the one query in the system; everything downstream works on the
// in-memory result.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// loadQuery denormalizes tasks with their driver, work center, and
// (optionally assigned) forklift, decoding the status and task-type codes
// into their display labels. The explicit ORDER BY is the "row 0 is
// newest" contract the aggregation engine depends on.
const loadQuery = `
SELECT t.TaskId           AS "Task #",
       u.UserName         AS "Driver",
       f.ForkliftName     AS "Forklift",
       w.WorkcenterCode   AS "Workcenter",
       t.PartNo           AS "Part No",
       CASE t.Status
            WHEN 1 THEN 'Waiting'
            WHEN 2 THEN 'In-Progress'
            ELSE 'Completed'
       END                AS "Status",
       CASE t.TaskType
            WHEN 1 THEN 'F/G Put Away'
            WHEN 2 THEN 'Replenishment'
            WHEN 3 THEN 'Part Return'
            WHEN 4 THEN 'FG Return'
            WHEN 5 THEN 'Container Move'
            ELSE 'Unknown'
       END                AS "Name",
       t.CreationTime     AS "Creation Time",
       t.StartTime        AS "Start Time",
       t.EndTime          AS "End Time",
       t.Duration         AS "Duration (m:s)",
       t.Distance         AS "Distance"
FROM Task t
     INNER JOIN "User" u
             ON t.AssignUserId = u.UserId
     INNER JOIN Workcenter w
             ON t.WorkcenterKey = w.WorkcenterKey
     LEFT JOIN Forklift f
            ON t.TagId = f.TagId
ORDER BY t.CreationTime DESC`

// LoadRawTasks runs the bulk load and returns the result untyped, cells as
// nullable strings under the raw column labels. Preprocessing owns the
// column contract; the repository only delivers what the source answered.
func (r *TaskRepository) LoadRawTasks(ctx context.Context) (*models.RawTable, error) {
	rows, err := r.db.QueryContext(ctx, loadQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	table := &models.RawTable{Columns: columns}
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		table.Rows = append(table.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read task rows: %w", err)
	}

	return table, nil
}
