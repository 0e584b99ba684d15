package attendance

import "context"

// AttendanceRepository is the daily attendance store. At most one record
// exists per (employee, date), enforced by the store itself so concurrent
// check-ins for the same day cannot both succeed.
type AttendanceRepository interface {
	// FindByEmployeeAndDate returns nil when no record exists.
	FindByEmployeeAndDate(ctx context.Context, employeeID int64, date string) (*Attendance, error)

	// CreateCheckIn opens the record for the date. An Absent placeholder
	// without a check-in is promoted in place. Fails with ErrAlreadyClosed when
	// the record is checked out and ErrAlreadyOpen when it is already open.
	CreateCheckIn(ctx context.Context, in CheckIn) (Attendance, error)

	// CloseCheckOut closes an open record. Fails with ErrNotCheckedIn when the
	// record is missing or not open.
	CloseCheckOut(ctx context.Context, out CheckOut) (Attendance, error)

	// UpsertAbsent inserts an Absent placeholder if nothing exists for the
	// date. First writer wins; inserted reports whether this call wrote.
	UpsertAbsent(ctx context.Context, employeeID int64, date string) (inserted bool, err error)

	// AdminCorrect overwrites times, worked minutes and status regardless of
	// open/closed state. Fails with ErrRecordNotFound.
	AdminCorrect(ctx context.Context, c Correction) (Attendance, error)

	// QueryByStatusAndMonth filters one employee's records by exact status and month.
	QueryByStatusAndMonth(ctx context.Context, employeeID int64, status Status, year, month int) ([]Attendance, error)

	// QueryByDate returns every employee's record for the date.
	QueryByDate(ctx context.Context, date string) ([]Attendance, error)

	// QueryByMonth returns all records of the month, optionally restricted to employeeIDs.
	QueryByMonth(ctx context.Context, year, month int, employeeIDs []int64) ([]Attendance, error)

	// CountByStatusAndMonth counts records of every employee with the status.
	CountByStatusAndMonth(ctx context.Context, status Status, year, month int) (int64, error)

	// ListOpenBefore returns open records dated before date.
	ListOpenBefore(ctx context.Context, date string) ([]Attendance, error)
}
