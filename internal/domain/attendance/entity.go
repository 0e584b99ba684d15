package attendance

import (
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/worktime"
)

type Status = worktime.Status

const (
	StatusPresent = worktime.StatusPresent
	StatusAbsent  = worktime.StatusAbsent
)

// Attendance is the daily record of one employee. EmployeeID and Date form
// the natural key.
type Attendance struct {
	EmployeeID    int64
	Date          string // YYYY-MM-DD, organization timezone
	CheckInTime   *string
	CheckInAt     *time.Time
	CheckOutTime  *string
	CheckOutAt    *time.Time
	WorkedMinutes *int
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined from the employee directory
	EmployeeName *string
	ProfilePic   *string
}

// IsOpen reports a record that has been checked into but not out of.
func (a Attendance) IsOpen() bool {
	return a.CheckInAt != nil && a.CheckOutTime == nil
}

// IsClosed reports a record that has been checked out.
func (a Attendance) IsClosed() bool {
	return a.CheckOutTime != nil
}

// TotalHours renders the worked duration, nil until checkout.
func (a Attendance) TotalHours() *string {
	if a.WorkedMinutes == nil {
		return nil
	}
	s := worktime.Duration{Minutes: *a.WorkedMinutes}.String()
	return &s
}

// CheckIn carries the fields written by a first check-in.
type CheckIn struct {
	EmployeeID  int64
	Date        string
	CheckInTime string
	CheckInAt   time.Time
}

// CheckOut carries the fields written when a record is closed.
type CheckOut struct {
	EmployeeID    int64
	Date          string
	CheckOutTime  string
	CheckOutAt    time.Time
	WorkedMinutes int
	Status        Status
}

// Correction is an administrative rewrite of a record's times.
type Correction struct {
	EmployeeID    int64
	Date          string
	CheckInTime   string
	CheckInAt     time.Time
	CheckOutTime  string
	CheckOutAt    time.Time
	WorkedMinutes int
	Status        Status
}
