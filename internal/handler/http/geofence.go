package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/inzone-backend-go/internal/handler/http/response"
)

type GeofenceHandler interface {
	Save(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetByDepartment(w http.ResponseWriter, r *http.Request)
}

type geofenceHandlerImpl struct {
	geofenceService geofence.GeofenceService
}

func NewGeofenceHandler(geofenceService geofence.GeofenceService) GeofenceHandler {
	return &geofenceHandlerImpl{geofenceService: geofenceService}
}

// Save handles POST /save-geofence
func (h *geofenceHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req geofence.SaveGeofenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	saved, err := h.geofenceService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Geofence saved", saved)
}

// List handles GET /get-geofences
func (h *geofenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	geofences, err := h.geofenceService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, geofences)
}

// Delete handles POST /delete-geofence
func (h *geofenceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	var req geofence.DeleteGeofenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	if err := h.geofenceService.Delete(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Geofence deleted", nil)
}

// GetByDepartment handles POST /get-dept-geofence
func (h *geofenceHandlerImpl) GetByDepartment(w http.ResponseWriter, r *http.Request) {
	var req geofence.DepartmentGeofenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	fence, err := h.geofenceService.GetByDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, fence)
}
