package geofence

import (
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/geo"
)

// Geofence is a department's check-in polygon. Color is display only.
type Geofence struct {
	ID         string
	Department string
	Color      string
	Vertices   []geo.Point
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MinVertices is the smallest polygon accepted.
const MinVertices = 3
