package database

import (
	"database/sql"
	"fmt"
)

// schema mirrors the upstream warehouse execution tables the load query
// joins. Bootstrap exists so a fresh development database (and the test
// suite) can run the same query the production source answers; the
// dashboard itself never writes to these tables.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS "User" (
		UserId   INTEGER PRIMARY KEY,
		UserName TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Workcenter (
		WorkcenterKey  INTEGER PRIMARY KEY,
		WorkcenterCode TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Forklift (
		TagId        INTEGER PRIMARY KEY,
		ForkliftName TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Task (
		TaskId        INTEGER PRIMARY KEY,
		AssignUserId  INTEGER NOT NULL REFERENCES "User"(UserId),
		WorkcenterKey INTEGER NOT NULL REFERENCES Workcenter(WorkcenterKey),
		TagId         INTEGER REFERENCES Forklift(TagId),
		PartNo        TEXT,
		Status        INTEGER,
		TaskType      INTEGER,
		CreationTime  TEXT,
		StartTime     TEXT,
		EndTime       TEXT,
		Duration      TEXT,
		Distance      REAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_task_creation_time ON Task(CreationTime)`,
}

// Bootstrap creates the source tables when they do not exist yet.
func Bootstrap(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}
	return nil
}
