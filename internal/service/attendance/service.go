package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/worktime"
)

// GeofenceResolver returns the polygon an employee of department must be inside.
type GeofenceResolver interface {
	ResolvePolygon(ctx context.Context, department string) ([]geo.Point, error)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	geofences GeofenceResolver
	policy    worktime.Policy
	clock     clock.Clock
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	now := a.clock.Now()

	if req.IsCheckOut() {
		rec, err := a.CheckOut(ctx, req.EmployeeID, now, req.Location())
		if err != nil {
			return attendance.MarkAttendanceResponse{}, err
		}
		return attendance.MarkAttendanceResponse{
			Action:  attendance.ActionCheckOut,
			Message: fmt.Sprintf("Check-out marked as %s", rec.Status),
			Record:  attendance.NewAttendanceResponse(rec),
		}, nil
	}

	rec, err := a.CheckIn(ctx, req.EmployeeID, now, req.Location())
	if err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}
	return attendance.MarkAttendanceResponse{
		Action:  attendance.ActionCheckIn,
		Message: "Check-in marked",
		Record:  attendance.NewAttendanceResponse(rec),
	}, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID int64, now time.Time, at geo.Point) (attendance.Attendance, error) {
	if err := a.verifyLocation(ctx, employeeID, at); err != nil {
		return attendance.Attendance{}, err
	}

	if !a.policy.IsWithinCheckInWindow(now) {
		return attendance.Attendance{}, attendance.ErrOutsideCheckInHours
	}
	if a.policy.IsNonWorkingDay(now) {
		return attendance.Attendance{}, attendance.ErrNonWorkingDay
	}

	date := a.policy.Date(now)

	if err := a.closeEarlierSessions(ctx, employeeID, date); err != nil {
		return attendance.Attendance{}, err
	}

	existing, err := a.AttendanceRepository.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		if existing.IsClosed() {
			return attendance.Attendance{}, attendance.ErrAlreadyMarkedToday
		}
		if existing.IsOpen() {
			return attendance.Attendance{}, attendance.ErrAlreadyOpen
		}
	}

	// The store re-checks both conditions atomically; a concurrent request
	// that got here first surfaces as one of the sentinels below.
	rec, err := a.AttendanceRepository.CreateCheckIn(ctx, attendance.CheckIn{
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: a.policy.FormatClock(now),
		CheckInAt:   now.UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrAlreadyClosed):
			return attendance.Attendance{}, attendance.ErrAlreadyMarkedToday
		case errors.Is(err, attendance.ErrAlreadyOpen):
			return attendance.Attendance{}, attendance.ErrAlreadyOpen
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create check-in: %w", err)
	}

	slog.Info("Employee checked in", "employee_id", employeeID, "date", date, "check_in_time", *rec.CheckInTime)
	return rec, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID int64, now time.Time, at geo.Point) (attendance.Attendance, error) {
	if err := a.verifyLocation(ctx, employeeID, at); err != nil {
		return attendance.Attendance{}, err
	}

	open, err := a.findOpenRecord(ctx, employeeID, now)
	if err != nil {
		return attendance.Attendance{}, err
	}

	duration, err := worktime.ComputeDuration(*open.CheckInAt, now)
	if err != nil {
		return attendance.Attendance{}, err
	}
	status := a.policy.Classify(duration)

	rec, err := a.AttendanceRepository.CloseCheckOut(ctx, attendance.CheckOut{
		EmployeeID:    employeeID,
		Date:          open.Date,
		CheckOutTime:  a.policy.FormatClock(now),
		CheckOutAt:    now.UTC(),
		WorkedMinutes: duration.Minutes,
		Status:        status,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) {
			return attendance.Attendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to close check-out: %w", err)
	}

	slog.Info("Employee checked out", "employee_id", employeeID, "date", rec.Date, "total_hours", duration.String(), "status", status)
	return rec, nil
}

// findOpenRecord returns today's open record. Before the window opens it
// also accepts yesterday's, so a session that crossed midnight can be closed
// as long as it stays under a day long.
func (a *AttendanceServiceImpl) findOpenRecord(ctx context.Context, employeeID int64, now time.Time) (attendance.Attendance, error) {
	local := a.policy.Local(now)
	dates := []string{a.policy.Date(now)}
	if local.Hour() < a.policy.StartHour {
		dates = append(dates, a.policy.Date(local.AddDate(0, 0, -1)))
	}

	for _, date := range dates {
		rec, err := a.AttendanceRepository.FindByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to get attendance for %s: %w", date, err)
		}
		if rec == nil || !rec.IsOpen() {
			continue
		}
		if now.Sub(*rec.CheckInAt) >= 24*time.Hour {
			continue
		}
		return *rec, nil
	}

	return attendance.Attendance{}, attendance.ErrNotCheckedIn
}

// closeEarlierSessions closes the employee's open records from dates before
// today the same way the stale-session sweep does.
func (a *AttendanceServiceImpl) closeEarlierSessions(ctx context.Context, employeeID int64, today string) error {
	stale, err := a.AttendanceRepository.ListOpenBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}
	for _, rec := range stale {
		if rec.EmployeeID != employeeID {
			continue
		}
		if _, err := closeStaleSession(ctx, a.AttendanceRepository, a.policy, rec); err != nil {
			return err
		}
	}
	return nil
}

// verifyLocation checks the employee stands inside their department polygon.
func (a *AttendanceServiceImpl) verifyLocation(ctx context.Context, employeeID int64, at geo.Point) error {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Approved {
		return employee.ErrEmployeeNotApproved
	}

	polygon, err := a.geofences.ResolvePolygon(ctx, emp.Department)
	if err != nil {
		if errors.Is(err, geofence.ErrGeofenceNotFound) {
			return attendance.ErrNoGeofence
		}
		return fmt.Errorf("failed to resolve geofence: %w", err)
	}

	if !geo.IsInside(at, polygon) {
		slog.Info("Rejected location outside geofence",
			"employee_id", employeeID,
			"department", emp.Department,
			"nearest_vertex_m", int(geo.NearestVertexDistance(at, polygon)),
		)
		return attendance.ErrOutsideGeofence
	}
	return nil
}

// UpdateAttendanceTime implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendanceTime(ctx context.Context, req attendance.UpdateAttendanceTimeRequest) (attendance.UpdateAttendanceTimeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.UpdateAttendanceTimeResponse{}, err
	}

	checkIn, err := a.policy.Combine(req.Date, req.CheckInTime)
	if err != nil {
		return attendance.UpdateAttendanceTimeResponse{}, err
	}
	checkOut, err := a.policy.Combine(req.Date, req.CheckOutTime)
	if err != nil {
		return attendance.UpdateAttendanceTimeResponse{}, err
	}
	if checkOut.Before(checkIn) {
		checkOut = checkOut.Add(24 * time.Hour)
	}

	duration, err := worktime.ComputeDuration(checkIn, checkOut)
	if err != nil {
		return attendance.UpdateAttendanceTimeResponse{}, err
	}
	status := a.policy.Classify(duration)

	rec, err := a.AttendanceRepository.AdminCorrect(ctx, attendance.Correction{
		EmployeeID:    req.EmployeeID,
		Date:          req.Date,
		CheckInTime:   a.policy.FormatClock(checkIn),
		CheckInAt:     checkIn.UTC(),
		CheckOutTime:  a.policy.FormatClock(checkOut),
		CheckOutAt:    checkOut.UTC(),
		WorkedMinutes: duration.Minutes,
		Status:        status,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.UpdateAttendanceTimeResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.UpdateAttendanceTimeResponse{}, fmt.Errorf("failed to correct attendance: %w", err)
	}

	slog.Info("Attendance corrected", "employee_id", req.EmployeeID, "date", req.Date, "total_hours", duration.String(), "status", status)

	return attendance.UpdateAttendanceTimeResponse{
		TotalHours: duration.String(),
		Status:     string(status),
		Record:     attendance.NewAttendanceResponse(rec),
	}, nil
}

// GetByStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetByStatus(ctx context.Context, req attendance.AttendanceByStatusRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.QueryByStatusAndMonth(ctx, req.EmployeeID, req.ParsedStatus(), req.Year, int(req.ParsedMonth()))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance by status: %w", err)
	}

	return mapAttendanceToResponses(records), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID int64) (*attendance.AttendanceResponse, error) {
	date := a.policy.Date(a.clock.Now())

	rec, err := a.AttendanceRepository.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	resp := attendance.NewAttendanceResponse(*rec)
	return &resp, nil
}

// GetForDate implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetForDate(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	req := attendance.AttendanceForDateRequest{Date: date}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.QueryByDate(ctx, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance by date: %w", err)
	}

	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.EmployeeID)
	}
	employees, err := a.EmployeeRepository.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	byID := make(map[int64]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	for i := range records {
		name := "Unknown"
		if e, ok := byID[records[i].EmployeeID]; ok {
			name = e.FullName()
			records[i].ProfilePic = e.ProfilePic
		}
		records[i].EmployeeName = &name
	}

	return mapAttendanceToResponses(records), nil
}

func mapAttendanceToResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, attendance.NewAttendanceResponse(rec))
	}
	return out
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	geofences GeofenceResolver,
	policy worktime.Policy,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		geofences:            geofences,
		policy:               policy,
		clock:                clk,
	}
}
