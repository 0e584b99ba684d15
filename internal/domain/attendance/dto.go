package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/worktime"
)

// ========================================
// MARK ATTENDANCE DTOs
// ========================================

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

// MarkAttendanceRequest is a check-in or check-out event from the mobile
// client. Client-side times are accepted for compatibility but the server
// clock is authoritative.
type MarkAttendanceRequest struct {
	EmployeeID      int64    `json:"employeeId"`
	Action          string   `json:"action,omitempty"`
	CheckInTime     *string  `json:"checkInTime,omitempty"`
	CheckInDateTime *string  `json:"checkInDateTime,omitempty"`
	CheckOutTime    *string  `json:"checkOutTime,omitempty"`
	TotalHours      *string  `json:"totalHours,omitempty"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if r.Action != "" && r.Action != ActionCheckIn && r.Action != ActionCheckOut {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: check_in, check_out",
		})
	}

	if r.CheckInDateTime != nil && *r.CheckInDateTime != "" {
		if _, ok := validator.IsValidDateTime(*r.CheckInDateTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "checkInDateTime",
				Message: "checkInDateTime must be an ISO 8601 timestamp",
			})
		}
	}

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if *r.Latitude < -90 || *r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if *r.Longitude < -180 || *r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IsCheckOut routes the event: an explicit action wins, otherwise a request
// carrying both checkOutTime and totalHours is a check-out.
func (r *MarkAttendanceRequest) IsCheckOut() bool {
	switch r.Action {
	case ActionCheckOut:
		return true
	case ActionCheckIn:
		return false
	}
	return r.CheckOutTime != nil && !validator.IsEmpty(*r.CheckOutTime) &&
		r.TotalHours != nil && !validator.IsEmpty(*r.TotalHours)
}

// Location returns the reported position. Only valid after Validate.
func (r *MarkAttendanceRequest) Location() geo.Point {
	return geo.Point{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

type MarkAttendanceResponse struct {
	Action  string             `json:"action"`
	Message string             `json:"message"`
	Record  AttendanceResponse `json:"record"`
}

// ========================================
// QUERY DTOs
// ========================================

type AttendanceResponse struct {
	EmployeeID      int64   `json:"employeeId"`
	Date            string  `json:"date"`
	CheckInTime     *string `json:"checkInTime"`
	CheckInDateTime *string `json:"checkInDateTime"`
	CheckOutTime    *string `json:"checkOutTime"`
	TotalHours      *string `json:"totalHours"`
	WorkedMinutes   *int    `json:"workedMinutes"`
	Status          string  `json:"status"`
	Name            *string `json:"name,omitempty"`
	ProfilePic      *string `json:"profilePic,omitempty"`
}

// NewAttendanceResponse renders a record at the API boundary.
func NewAttendanceResponse(att Attendance) AttendanceResponse {
	var checkInAt *string
	if att.CheckInAt != nil {
		s := att.CheckInAt.UTC().Format(time.RFC3339)
		checkInAt = &s
	}

	return AttendanceResponse{
		EmployeeID:      att.EmployeeID,
		Date:            att.Date,
		CheckInTime:     att.CheckInTime,
		CheckInDateTime: checkInAt,
		CheckOutTime:    att.CheckOutTime,
		TotalHours:      att.TotalHours(),
		WorkedMinutes:   att.WorkedMinutes,
		Status:          string(att.Status),
		Name:            att.EmployeeName,
		ProfilePic:      att.ProfilePic,
	}
}

type AttendanceByStatusRequest struct {
	EmployeeID int64  `json:"employeeId"`
	Status     string `json:"status"`
	Month      string `json:"month"` // "July", "Jul", "7" or "07"
	Year       int    `json:"year"`

	parsedStatus Status
	parsedMonth  time.Month
}

func (r *AttendanceByStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	status, err := worktime.ParseStatus(r.Status)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Present, Absent",
		})
	}
	r.parsedStatus = status

	month, err := validator.ParseMonth(r.Month)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be a month name or number",
		})
	}
	r.parsedMonth = month

	if r.Year < 2000 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four digit year",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedStatus and ParsedMonth are only meaningful after Validate.
func (r *AttendanceByStatusRequest) ParsedStatus() Status    { return r.parsedStatus }
func (r *AttendanceByStatusRequest) ParsedMonth() time.Month { return r.parsedMonth }

type TodayAttendanceRequest struct {
	EmployeeID int64 `json:"employeeId"`
}

func (r *TodayAttendanceRequest) Validate() error {
	if r.EmployeeID <= 0 {
		return validator.ValidationErrors{{Field: "employeeId", Message: "employeeId is required"}}
	}
	return nil
}

type AttendanceForDateRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

func (r *AttendanceForDateRequest) Validate() error {
	if _, valid := validator.IsValidDate(strings.TrimSpace(r.Date)); !valid {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	r.Date = strings.TrimSpace(r.Date)
	return nil
}

// ========================================
// ADMIN DTOs
// ========================================

// UpdateAttendanceTimeRequest rewrites a record's check-in and check-out
// times. Times are time-of-day strings such as "09:00:00 AM" or "13:30".
type UpdateAttendanceTimeRequest struct {
	EmployeeID   int64  `json:"employeeId"`
	Date         string `json:"date"`
	CheckInTime  string `json:"checkInTime"`
	CheckOutTime string `json:"checkOutTime"`
}

func (r *UpdateAttendanceTimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, err := worktime.ParseClock(r.CheckInTime); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "checkInTime",
			Message: "checkInTime must be a time of day like 09:00:00 AM",
		})
	}

	if _, err := worktime.ParseClock(r.CheckOutTime); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "checkOutTime",
			Message: "checkOutTime must be a time of day like 05:30:00 PM",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAttendanceTimeResponse struct {
	TotalHours string             `json:"totalHours"`
	Status     string             `json:"status"`
	Record     AttendanceResponse `json:"record"`
}

// ========================================
// SWEEP DTOs
// ========================================

type RunSweepRequest struct {
	Date *string `json:"date,omitempty"` // defaults to today
}

func (r *RunSweepRequest) Validate() error {
	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
		}
	}
	return nil
}

// SweepResult summarises one absence sweep.
type SweepResult struct {
	Date            string `json:"date"`
	Skipped         bool   `json:"skipped"`
	Reason          string `json:"reason,omitempty"`
	Employees       int    `json:"employees"`
	MarkedAbsent    int    `json:"markedAbsent"`
	AlreadyPresent  int    `json:"alreadyPresent"`
	AlreadyRecorded int    `json:"alreadyRecorded"`
	Failed          int    `json:"failed"`
}
