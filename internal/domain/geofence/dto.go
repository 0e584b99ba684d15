package geofence

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/validator"
)

type SaveGeofenceRequest struct {
	ID          *string     `json:"id,omitempty"`
	Department  string      `json:"department"`
	Color       string      `json:"color"`
	Coordinates []geo.Point `json:"coordinates"`
}

func (r *SaveGeofenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID != nil && validator.IsEmpty(*r.ID) {
		r.ID = nil
	}
	if r.ID != nil && !validator.IsValidUUID(*r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a geofence id returned by save-geofence",
		})
	}

	r.Department = strings.TrimSpace(r.Department)
	if r.Department == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if r.Color != "" && !validator.IsValidHexColor(r.Color) {
		errs = append(errs, validator.ValidationError{
			Field:   "color",
			Message: "color must be a hex color like #3388ff",
		})
	}

	if len(r.Coordinates) < MinVertices {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinates",
			Message: fmt.Sprintf("at least %d coordinates are required", MinVertices),
		})
	}
	for i, p := range r.Coordinates {
		if !p.Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("coordinates[%d]", i),
				Message: "latitude must be within [-90, 90] and longitude within [-180, 180]",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeleteGeofenceRequest struct {
	ID string `json:"id"`
}

func (r *DeleteGeofenceRequest) Validate() error {
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	if !validator.IsValidUUID(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a geofence id returned by save-geofence"}}
	}
	return nil
}

type DepartmentGeofenceRequest struct {
	Department string `json:"department"`
}

func (r *DepartmentGeofenceRequest) Validate() error {
	r.Department = strings.TrimSpace(r.Department)
	if r.Department == "" {
		return validator.ValidationErrors{{Field: "department", Message: "department is required"}}
	}
	return nil
}

type GeofenceResponse struct {
	ID          string      `json:"id"`
	Department  string      `json:"department"`
	Color       string      `json:"color"`
	Coordinates []geo.Point `json:"coordinates"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func NewGeofenceResponse(g Geofence) GeofenceResponse {
	return GeofenceResponse{
		ID:          g.ID,
		Department:  g.Department,
		Color:       g.Color,
		Coordinates: g.Vertices,
		UpdatedAt:   g.UpdatedAt,
	}
}
