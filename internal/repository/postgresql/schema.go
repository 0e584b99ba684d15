package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/database"
)

// schema is applied at startup. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id            BIGINT PRIMARY KEY,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL DEFAULT '',
		email         TEXT NOT NULL,
		department    TEXT NOT NULL DEFAULT '',
		post          TEXT NOT NULL DEFAULT 'Analyst',
		role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
		profile_pic   TEXT,
		approved      BOOLEAN NOT NULL DEFAULT FALSE,
		approved_by   BIGINT,
		requested_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_records (
		employee_id     BIGINT NOT NULL,
		date            DATE NOT NULL,
		check_in_time   TEXT,
		check_in_at     TIMESTAMPTZ,
		check_out_time  TEXT,
		check_out_at    TIMESTAMPTZ,
		worked_minutes  INTEGER CHECK (worked_minutes >= 0),
		status          TEXT NOT NULL DEFAULT 'Absent' CHECK (status IN ('Present', 'Absent')),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (employee_id, date),
		CHECK (check_out_time IS NULL OR check_in_time IS NOT NULL)
	)`,
	// An earlier day's open session is closed by the service on the next
	// check-in, so open records are not unique per employee.
	`DROP INDEX IF EXISTS attendance_records_one_open_per_employee`,
	`CREATE INDEX IF NOT EXISTS attendance_records_open_sessions
		ON attendance_records (employee_id, date)
		WHERE check_in_at IS NOT NULL AND check_out_time IS NULL`,
	`CREATE INDEX IF NOT EXISTS attendance_records_date_status
		ON attendance_records (date, status)`,
	`CREATE TABLE IF NOT EXISTS geofences (
		id          TEXT PRIMARY KEY,
		department  TEXT NOT NULL,
		color       TEXT NOT NULL DEFAULT '',
		vertices    JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS geofences_department_updated
		ON geofences (department, updated_at DESC)`,
	`CREATE TABLE IF NOT EXISTS decline_logs (
		id           UUID PRIMARY KEY,
		employee_id  BIGINT NOT NULL,
		declined_by  BIGINT NOT NULL,
		email        TEXT NOT NULL,
		first_name   TEXT NOT NULL,
		last_name    TEXT NOT NULL DEFAULT '',
		declined_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS decline_logs_declined_by ON decline_logs (declined_by)`,
}

// Tables lists every table owned by the service, children first.
var Tables = []string{"decline_logs", "geofences", "attendance_records", "employees"}

// Migrate creates the tables and indexes the repositories rely on.
func Migrate(ctx context.Context, db *database.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
