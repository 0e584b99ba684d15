package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/inzone-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/inzone-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	MarkAttendance(w http.ResponseWriter, r *http.Request)
	GetByStatus(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetForDate(w http.ResponseWriter, r *http.Request)
	UpdateAttendanceTime(w http.ResponseWriter, r *http.Request)
	RunAbsenceSweep(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	sweepService      attendance.SweepService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, sweepService attendance.SweepService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		sweepService:      sweepService,
	}
}

// MarkAttendance handles POST /mark-attendance
func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	if err := middleware.AuthorizeEmployee(r.Context(), req.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// GetByStatus handles POST /get-attendance-by-status
func (h *attendanceHandlerImpl) GetByStatus(w http.ResponseWriter, r *http.Request) {
	var req attendance.AttendanceByStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	if err := middleware.AuthorizeEmployee(r.Context(), req.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.GetByStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetToday handles POST /get-today-attendance. A missing record is a
// successful response with null data.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	var req attendance.TodayAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := middleware.AuthorizeEmployee(r.Context(), req.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.GetToday(r.Context(), req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if record == nil {
		response.SuccessWithMessage(w, "No attendance marked today", nil)
		return
	}
	response.Success(w, record)
}

// GetForDate handles POST /get-attendance-for-date
func (h *attendanceHandlerImpl) GetForDate(w http.ResponseWriter, r *http.Request) {
	var req attendance.AttendanceForDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.GetForDate(r.Context(), req.Date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// UpdateAttendanceTime handles POST /update-attendance-time
func (h *attendanceHandlerImpl) UpdateAttendanceTime(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	result, err := h.attendanceService.UpdateAttendanceTime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", result)
}

// RunAbsenceSweep handles POST /run-absence-sweep. An empty body sweeps today.
func (h *attendanceHandlerImpl) RunAbsenceSweep(w http.ResponseWriter, r *http.Request) {
	var req attendance.RunSweepRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid request body", nil)
			return
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date := h.sweepService.Today()
	if req.Date != nil && *req.Date != "" {
		date = *req.Date
	}

	result, err := h.sweepService.RunAbsenceSweep(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
