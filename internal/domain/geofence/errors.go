package geofence

import "errors"

var (
	ErrGeofenceNotFound = errors.New("geofence not found")
	ErrInvalidPolygon   = errors.New("geofence needs at least 3 valid vertices")
)
