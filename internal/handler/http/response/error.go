package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/signup"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/validator"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	// Auth
	{auth.ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrAdminRequired, http.StatusForbidden, "ADMIN_REQUIRED"},
	{auth.ErrEmployeeIDMismatch, http.StatusForbidden, "FORBIDDEN"},

	// Attendance
	{attendance.ErrOutsideGeofence, http.StatusForbidden, "OUTSIDE_GEOFENCE"},
	{attendance.ErrOutsideCheckInHours, http.StatusForbidden, "OUTSIDE_CHECK_IN_HOURS"},
	{attendance.ErrNonWorkingDay, http.StatusForbidden, "NON_WORKING_DAY"},
	{attendance.ErrAlreadyMarkedToday, http.StatusConflict, "ALREADY_MARKED_TODAY"},
	{attendance.ErrAlreadyOpen, http.StatusConflict, "ALREADY_OPEN"},
	{attendance.ErrNoGeofence, http.StatusPreconditionFailed, "NO_GEOFENCE"},
	{attendance.ErrNotCheckedIn, http.StatusConflict, "NOT_CHECKED_IN"},
	{attendance.ErrInvalidTimeRange, http.StatusUnprocessableEntity, "INVALID_TIME_RANGE"},
	{attendance.ErrAlreadyClosed, http.StatusConflict, "ALREADY_CLOSED"},
	{attendance.ErrRecordNotFound, http.StatusNotFound, "RECORD_NOT_FOUND"},
	{attendance.ErrStorageConflict, http.StatusConflict, "STORAGE_CONFLICT"},
	{attendance.ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
	{attendance.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},

	// Employee
	{employee.ErrEmployeeNotFound, http.StatusNotFound, "EMPLOYEE_NOT_FOUND"},
	{employee.ErrEmployeeIDExists, http.StatusConflict, "EMPLOYEE_ID_EXISTS"},
	{employee.ErrEmployeeNotApproved, http.StatusForbidden, "EMPLOYEE_NOT_APPROVED"},
	{employee.ErrAlreadyApproved, http.StatusConflict, "ALREADY_APPROVED"},

	// Geofence
	{geofence.ErrGeofenceNotFound, http.StatusNotFound, "GEOFENCE_NOT_FOUND"},
	{geofence.ErrInvalidPolygon, http.StatusUnprocessableEntity, "INVALID_POLYGON"},

	// Signup
	{signup.ErrInvalidAction, http.StatusUnprocessableEntity, "INVALID_ACTION"},
	{signup.ErrNotPending, http.StatusConflict, "NOT_PENDING"},

	// Report
	{report.ErrInvalidMonth, http.StatusUnprocessableEntity, "INVALID_MONTH"},
	{report.ErrInvalidYear, http.StatusUnprocessableEntity, "INVALID_YEAR"},
	{report.ErrReportGenerationFailed, http.StatusInternalServerError, "REPORT_GENERATION_FAILED"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			Error(w, m.status, m.code, m.err.Error(), nil)
			return
		}
	}

	slog.Error("Unhandled error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}
