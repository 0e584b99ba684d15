package geofence

import (
	"context"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/geo"
)

type GeofenceService interface {
	Save(ctx context.Context, req SaveGeofenceRequest) (GeofenceResponse, error)
	List(ctx context.Context) ([]GeofenceResponse, error)
	Delete(ctx context.Context, req DeleteGeofenceRequest) error
	GetByDepartment(ctx context.Context, req DepartmentGeofenceRequest) (GeofenceResponse, error)

	// ResolvePolygon returns the department polygon or the configured fallback.
	// It returns ErrGeofenceNotFound when neither exists.
	ResolvePolygon(ctx context.Context, department string) ([]geo.Point, error)
}
