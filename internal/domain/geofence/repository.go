package geofence

import "context"

type GeofenceRepository interface {
	// Upsert inserts or replaces by ID. Last write wins.
	Upsert(ctx context.Context, g Geofence) (Geofence, error)
	GetByID(ctx context.Context, id string) (Geofence, error)
	List(ctx context.Context) ([]Geofence, error)
	Delete(ctx context.Context, id string) error

	// GetLatestByDepartment returns the most recently updated polygon of the department.
	GetLatestByDepartment(ctx context.Context, department string) (Geofence, error)
}
