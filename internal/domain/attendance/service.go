package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/geo"
)

// AttendanceService is the attendance state engine.
type AttendanceService interface {
	// MarkAttendance routes a client event to CheckIn or CheckOut
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error)

	// CheckIn opens today's record after geofence, window and uniqueness checks
	CheckIn(ctx context.Context, employeeID int64, now time.Time, at geo.Point) (Attendance, error)

	// CheckOut closes the open record and classifies the day
	CheckOut(ctx context.Context, employeeID int64, now time.Time, at geo.Point) (Attendance, error)

	// UpdateAttendanceTime is the admin correction of a record's times
	UpdateAttendanceTime(ctx context.Context, req UpdateAttendanceTimeRequest) (UpdateAttendanceTimeResponse, error)

	// GetByStatus lists an employee's records for a month filtered by status
	GetByStatus(ctx context.Context, req AttendanceByStatusRequest) ([]AttendanceResponse, error)

	// GetToday returns the caller's record for today, nil when none exists
	GetToday(ctx context.Context, employeeID int64) (*AttendanceResponse, error)

	// GetForDate lists every record of a date enriched with employee details
	GetForDate(ctx context.Context, date string) ([]AttendanceResponse, error)
}

// SweepService runs the end-of-day jobs.
type SweepService interface {
	// RunAbsenceSweep marks every approved employee without a Present record on date as Absent
	RunAbsenceSweep(ctx context.Context, date string) (SweepResult, error)

	// CloseStaleSessions closes records left open on days before today
	CloseStaleSessions(ctx context.Context, today string) (int, error)

	// Today is the organization date at the current instant
	Today() string

	// StaleCutoff is the date before which open records can no longer be
	// checked out. Until the check-in window opens it is yesterday.
	StaleCutoff() string
}
