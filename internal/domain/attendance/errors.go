package attendance

import (
	"errors"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/worktime"
)

// Attendance domain errors
var (
	// Check-in errors
	ErrOutsideGeofence     = errors.New("you are outside the geofenced area")
	ErrOutsideCheckInHours = errors.New("check-in is only allowed during working hours")
	ErrNonWorkingDay       = errors.New("attendance cannot be marked on a non-working day")
	ErrAlreadyMarkedToday  = errors.New("attendance already marked for today")
	ErrAlreadyOpen         = errors.New("you have already checked in")
	ErrNoGeofence          = errors.New("no geofence configured for this department")

	// Check-out errors
	ErrNotCheckedIn     = errors.New("you have not checked in yet")
	ErrInvalidTimeRange = worktime.ErrInvalidTimeRange

	// Store errors
	ErrAlreadyClosed      = errors.New("attendance record is already closed")
	ErrRecordNotFound     = errors.New("attendance record not found")
	ErrStorageConflict    = errors.New("attendance record was modified concurrently")
	ErrStorageUnavailable = errors.New("attendance storage is unavailable")

	ErrForbidden = errors.New("not allowed to access another employee's attendance")
)
