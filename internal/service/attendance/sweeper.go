package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/worktime"
)

type SweepServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	policy worktime.Policy
	clock  clock.Clock
}

// Today implements attendance.SweepService.
func (s *SweepServiceImpl) Today() string {
	return s.policy.Date(s.clock.Now())
}

// StaleCutoff implements attendance.SweepService.
func (s *SweepServiceImpl) StaleCutoff() string {
	local := s.policy.Local(s.clock.Now())
	if local.Hour() < s.policy.StartHour {
		return s.policy.Date(local.AddDate(0, 0, -1))
	}
	return s.policy.Date(local)
}

// RunAbsenceSweep implements attendance.SweepService. Running it again for
// the same date changes nothing.
func (s *SweepServiceImpl) RunAbsenceSweep(ctx context.Context, date string) (attendance.SweepResult, error) {
	result := attendance.SweepResult{Date: date}

	day, err := time.ParseInLocation(worktime.DateLayout, date, s.policy.Location)
	if err != nil {
		return result, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	if s.policy.IsNonWorkingDay(day) {
		result.Skipped = true
		result.Reason = fmt.Sprintf("%s is a non-working day", day.Weekday())
		slog.Info("Absence sweep skipped", "date", date, "reason", result.Reason)
		return result, nil
	}

	employees, err := s.EmployeeRepository.ListTracked(ctx, "")
	if err != nil {
		return result, fmt.Errorf("failed to list approved employees: %w", err)
	}
	result.Employees = len(employees)

	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rec, err := s.AttendanceRepository.FindByEmployeeAndDate(ctx, emp.ID, date)
		if err != nil {
			result.Failed++
			slog.Error("Absence sweep failed to read record", "employee_id", emp.ID, "date", date, "error", err)
			continue
		}
		if rec != nil {
			if rec.Status == attendance.StatusPresent {
				result.AlreadyPresent++
			} else {
				result.AlreadyRecorded++
			}
			continue
		}

		inserted, err := s.AttendanceRepository.UpsertAbsent(ctx, emp.ID, date)
		if err != nil {
			result.Failed++
			slog.Error("Absence sweep failed to mark absent", "employee_id", emp.ID, "date", date, "error", err)
			continue
		}
		if inserted {
			result.MarkedAbsent++
		} else {
			// A check-in landed between the read and the insert.
			result.AlreadyRecorded++
		}
	}

	slog.Info("Absence sweep finished",
		"date", date,
		"employees", result.Employees,
		"marked_absent", result.MarkedAbsent,
		"already_present", result.AlreadyPresent,
		"already_recorded", result.AlreadyRecorded,
		"failed", result.Failed,
	)
	return result, nil
}

// CloseStaleSessions implements attendance.SweepService. An open record from
// an earlier day is closed at that day's window end and counted Absent since
// the checkout was never verified.
func (s *SweepServiceImpl) CloseStaleSessions(ctx context.Context, today string) (int, error) {
	stale, err := s.AttendanceRepository.ListOpenBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale sessions: %w", err)
	}

	closed := 0
	for _, rec := range stale {
		if err := ctx.Err(); err != nil {
			return closed, err
		}

		ok, err := closeStaleSession(ctx, s.AttendanceRepository, s.policy, rec)
		if err != nil {
			slog.Error("Stale session could not be closed", "employee_id", rec.EmployeeID, "date", rec.Date, "error", err)
			continue
		}
		if ok {
			closed++
		}
	}

	return closed, nil
}

// closeStaleSession closes an open record at its day's window end as Absent.
// It reports false when a concurrent checkout closed the record first.
func closeStaleSession(ctx context.Context, repo attendance.AttendanceRepository, policy worktime.Policy, rec attendance.Attendance) (bool, error) {
	end, err := policy.WindowEnd(rec.Date)
	if err != nil {
		return false, err
	}
	if end.Before(*rec.CheckInAt) {
		end = *rec.CheckInAt
	}

	duration, err := worktime.ComputeDuration(*rec.CheckInAt, end)
	if err != nil {
		return false, err
	}

	_, err = repo.CloseCheckOut(ctx, attendance.CheckOut{
		EmployeeID:    rec.EmployeeID,
		Date:          rec.Date,
		CheckOutTime:  policy.FormatClock(end),
		CheckOutAt:    end.UTC(),
		WorkedMinutes: duration.Minutes,
		Status:        attendance.StatusAbsent,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) {
			// Closed by a late checkout in the meantime.
			return false, nil
		}
		return false, fmt.Errorf("failed to close stale session: %w", err)
	}

	slog.Info("Closed stale session", "employee_id", rec.EmployeeID, "date", rec.Date, "check_out_time", policy.FormatClock(end))
	return true, nil
}

func NewSweepService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policy worktime.Policy,
	clk clock.Clock,
) attendance.SweepService {
	return &SweepServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		policy:               policy,
		clock:                clk,
	}
}
