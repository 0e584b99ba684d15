package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	employee_id, date::text, check_in_time, check_in_at, check_out_time, check_out_at,
	worked_minutes, status, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.EmployeeID, &att.Date, &att.CheckInTime, &att.CheckInAt, &att.CheckOutTime, &att.CheckOutAt,
		&att.WorkedMinutes, &att.Status, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

func (a *attendanceRepository) queryAttendances(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, a.classify(err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, a.classify(err)
	}

	return records, nil
}

func (a *attendanceRepository) classify(err error) error {
	return classify(err, attendance.ErrStorageConflict, attendance.ErrStorageUnavailable)
}

// FindByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2::date
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", a.classify(err))
	}

	return &att, nil
}

// CreateCheckIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateCheckIn(ctx context.Context, in attendance.CheckIn) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	// An Absent placeholder left by the sweep is promoted; an open or closed
	// record is left untouched and yields no row.
	query := `
		INSERT INTO attendance_records (employee_id, date, check_in_time, check_in_at, status)
		VALUES ($1, $2::date, $3, $4, 'Absent')
		ON CONFLICT (employee_id, date) DO UPDATE
		SET check_in_time = EXCLUDED.check_in_time,
			check_in_at = EXCLUDED.check_in_at,
			status = 'Absent',
			updated_at = NOW()
		WHERE attendance_records.check_in_at IS NULL
		  AND attendance_records.check_out_time IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, in.EmployeeID, in.Date, in.CheckInTime, in.CheckInAt))
	if err == nil {
		return att, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, fmt.Errorf("failed to create check-in: %w", a.classify(err))
	}

	existing, err := a.FindByEmployeeAndDate(ctx, in.EmployeeID, in.Date)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if existing != nil && existing.IsClosed() {
		return attendance.Attendance{}, attendance.ErrAlreadyClosed
	}
	return attendance.Attendance{}, attendance.ErrAlreadyOpen
}

// CloseCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseCheckOut(ctx context.Context, out attendance.CheckOut) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_out_time = $3,
			check_out_at = $4,
			worked_minutes = $5,
			status = $6,
			updated_at = NOW()
		WHERE employee_id = $1 AND date = $2::date
		  AND check_in_at IS NOT NULL
		  AND check_out_time IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query,
		out.EmployeeID, out.Date, out.CheckOutTime, out.CheckOutAt, out.WorkedMinutes, string(out.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to close check-out: %w", a.classify(err))
	}

	return att, nil
}

// UpsertAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertAbsent(ctx context.Context, employeeID int64, date string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (employee_id, date, status)
		VALUES ($1, $2::date, 'Absent')
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to upsert absent record: %w", a.classify(err))
	}

	return tag.RowsAffected() == 1, nil
}

// AdminCorrect implements attendance.AttendanceRepository.
func (a *attendanceRepository) AdminCorrect(ctx context.Context, c attendance.Correction) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_in_time = $3,
			check_in_at = $4,
			check_out_time = $5,
			check_out_at = $6,
			worked_minutes = $7,
			status = $8,
			updated_at = NOW()
		WHERE employee_id = $1 AND date = $2::date
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query,
		c.EmployeeID, c.Date, c.CheckInTime, c.CheckInAt, c.CheckOutTime, c.CheckOutAt, c.WorkedMinutes, string(c.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrRecordNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to correct attendance: %w", a.classify(err))
	}

	return att, nil
}

// QueryByStatusAndMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) QueryByStatusAndMonth(ctx context.Context, employeeID int64, status attendance.Status, year, month int) ([]attendance.Attendance, error) {
	from, to := monthRange(year, month)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND status = $2
		  AND date >= $3::date AND date < $4::date
		ORDER BY date ASC
	`

	return a.queryAttendances(ctx, query, employeeID, string(status), from, to)
}

// QueryByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) QueryByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date = $1::date
		ORDER BY employee_id ASC
	`

	return a.queryAttendances(ctx, query, date)
}

// QueryByMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) QueryByMonth(ctx context.Context, year, month int, employeeIDs []int64) ([]attendance.Attendance, error) {
	from, to := monthRange(year, month)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date >= $1::date AND date < $2::date
		  AND ($3::bigint[] IS NULL OR employee_id = ANY($3))
		ORDER BY date ASC, employee_id ASC
	`

	return a.queryAttendances(ctx, query, from, to, employeeIDs)
}

// CountByStatusAndMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByStatusAndMonth(ctx context.Context, status attendance.Status, year, month int) (int64, error) {
	q := GetQuerier(ctx, a.db)
	from, to := monthRange(year, month)

	query := `
		SELECT COUNT(*)
		FROM attendance_records
		WHERE status = $1 AND date >= $2::date AND date < $3::date
	`

	var total int64
	if err := q.QueryRow(ctx, query, string(status), from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count attendances: %w", a.classify(err))
	}

	return total, nil
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date string) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date < $1::date
		  AND check_in_at IS NOT NULL
		  AND check_out_time IS NULL
		ORDER BY date ASC, employee_id ASC
	`

	return a.queryAttendances(ctx, query, date)
}

// monthRange returns the first day of the month and of the following month.
func monthRange(year, month int) (string, string) {
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}
	return fmt.Sprintf("%04d-%02d-01", year, month), fmt.Sprintf("%04d-%02d-01", nextYear, nextMonth)
}
