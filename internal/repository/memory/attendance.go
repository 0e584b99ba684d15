// Package memory holds process-local repositories. They enforce the same
// uniqueness rules as the Postgres schema and back the "memory" storage
// driver and the service tests.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
)

type attendanceKey struct {
	employeeID int64
	date       string
}

type attendanceRepository struct {
	mu      sync.RWMutex
	records map[attendanceKey]attendance.Attendance
	now     func() time.Time
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{
		records: make(map[attendanceKey]attendance.Attendance),
		now:     time.Now,
	}
}

// FindByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date string) (*attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[attendanceKey{employeeID, date}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// CreateCheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepository) CreateCheckIn(ctx context.Context, in attendance.CheckIn) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{in.EmployeeID, in.Date}
	existing, exists := r.records[key]
	if exists {
		if existing.IsClosed() {
			return attendance.Attendance{}, attendance.ErrAlreadyClosed
		}
		if existing.IsOpen() {
			return attendance.Attendance{}, attendance.ErrAlreadyOpen
		}
	}

	now := r.now()
	rec := existing
	if !exists {
		rec = attendance.Attendance{
			EmployeeID: in.EmployeeID,
			Date:       in.Date,
			CreatedAt:  now,
		}
	}
	checkInTime := in.CheckInTime
	checkInAt := in.CheckInAt
	rec.CheckInTime = &checkInTime
	rec.CheckInAt = &checkInAt
	rec.Status = attendance.StatusAbsent
	rec.UpdatedAt = now

	r.records[key] = rec
	return rec, nil
}

// CloseCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) CloseCheckOut(ctx context.Context, out attendance.CheckOut) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{out.EmployeeID, out.Date}
	rec, ok := r.records[key]
	if !ok || !rec.IsOpen() {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}

	checkOutTime := out.CheckOutTime
	checkOutAt := out.CheckOutAt
	minutes := out.WorkedMinutes
	rec.CheckOutTime = &checkOutTime
	rec.CheckOutAt = &checkOutAt
	rec.WorkedMinutes = &minutes
	rec.Status = out.Status
	rec.UpdatedAt = r.now()

	r.records[key] = rec
	return rec, nil
}

// UpsertAbsent implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpsertAbsent(ctx context.Context, employeeID int64, date string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{employeeID, date}
	if _, ok := r.records[key]; ok {
		return false, nil
	}

	now := r.now()
	r.records[key] = attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		Status:     attendance.StatusAbsent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return true, nil
}

// AdminCorrect implements attendance.AttendanceRepository.
func (r *attendanceRepository) AdminCorrect(ctx context.Context, c attendance.Correction) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{c.EmployeeID, c.Date}
	rec, ok := r.records[key]
	if !ok {
		return attendance.Attendance{}, attendance.ErrRecordNotFound
	}

	checkInTime, checkOutTime := c.CheckInTime, c.CheckOutTime
	checkInAt, checkOutAt := c.CheckInAt, c.CheckOutAt
	minutes := c.WorkedMinutes
	rec.CheckInTime = &checkInTime
	rec.CheckInAt = &checkInAt
	rec.CheckOutTime = &checkOutTime
	rec.CheckOutAt = &checkOutAt
	rec.WorkedMinutes = &minutes
	rec.Status = c.Status
	rec.UpdatedAt = r.now()

	r.records[key] = rec
	return rec, nil
}

// QueryByStatusAndMonth implements attendance.AttendanceRepository.
func (r *attendanceRepository) QueryByStatusAndMonth(ctx context.Context, employeeID int64, status attendance.Status, year, month int) ([]attendance.Attendance, error) {
	prefix := monthPrefix(year, month)
	return r.collect(func(rec attendance.Attendance) bool {
		return rec.EmployeeID == employeeID && rec.Status == status && strings.HasPrefix(rec.Date, prefix)
	}), nil
}

// QueryByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) QueryByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	return r.collect(func(rec attendance.Attendance) bool {
		return rec.Date == date
	}), nil
}

// QueryByMonth implements attendance.AttendanceRepository.
func (r *attendanceRepository) QueryByMonth(ctx context.Context, year, month int, employeeIDs []int64) ([]attendance.Attendance, error) {
	prefix := monthPrefix(year, month)
	return r.collect(func(rec attendance.Attendance) bool {
		if !strings.HasPrefix(rec.Date, prefix) {
			return false
		}
		return employeeIDs == nil || slices.Contains(employeeIDs, rec.EmployeeID)
	}), nil
}

// CountByStatusAndMonth implements attendance.AttendanceRepository.
func (r *attendanceRepository) CountByStatusAndMonth(ctx context.Context, status attendance.Status, year, month int) (int64, error) {
	prefix := monthPrefix(year, month)
	return int64(len(r.collect(func(rec attendance.Attendance) bool {
		return rec.Status == status && strings.HasPrefix(rec.Date, prefix)
	}))), nil
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListOpenBefore(ctx context.Context, date string) ([]attendance.Attendance, error) {
	return r.collect(func(rec attendance.Attendance) bool {
		return rec.IsOpen() && rec.Date < date
	}), nil
}

// collect returns matching records ordered by date then employee.
func (r *attendanceRepository) collect(match func(attendance.Attendance) bool) []attendance.Attendance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]attendance.Attendance, 0)
	for _, rec := range r.records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	slices.SortFunc(out, func(a, b attendance.Attendance) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.EmployeeID, b.EmployeeID)
	})
	return out
}

func monthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}
