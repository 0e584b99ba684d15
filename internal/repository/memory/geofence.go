package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/geofence"
)

type geofenceRepository struct {
	mu     sync.RWMutex
	fences map[string]geofence.Geofence
	now    func() time.Time
}

func NewGeofenceRepository() geofence.GeofenceRepository {
	return &geofenceRepository{
		fences: make(map[string]geofence.Geofence),
		now:    time.Now,
	}
}

// Upsert implements geofence.GeofenceRepository.
func (r *geofenceRepository) Upsert(ctx context.Context, g geofence.Geofence) (geofence.Geofence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if existing, ok := r.fences[g.ID]; ok {
		g.CreatedAt = existing.CreatedAt
	} else {
		g.CreatedAt = now
	}
	// Successive writes in the same clock tick must still order.
	for _, other := range r.fences {
		if other.Department == g.Department && !now.After(other.UpdatedAt) {
			now = other.UpdatedAt.Add(time.Nanosecond)
		}
	}
	g.UpdatedAt = now
	g.Vertices = slices.Clone(g.Vertices)

	r.fences[g.ID] = g
	return g, nil
}

// GetByID implements geofence.GeofenceRepository.
func (r *geofenceRepository) GetByID(ctx context.Context, id string) (geofence.Geofence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.fences[id]
	if !ok {
		return geofence.Geofence{}, geofence.ErrGeofenceNotFound
	}
	g.Vertices = slices.Clone(g.Vertices)
	return g, nil
}

// List implements geofence.GeofenceRepository.
func (r *geofenceRepository) List(ctx context.Context) ([]geofence.Geofence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]geofence.Geofence, 0, len(r.fences))
	for _, g := range r.fences {
		g.Vertices = slices.Clone(g.Vertices)
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b geofence.Geofence) int {
		if c := strings.Compare(a.Department, b.Department); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Delete implements geofence.GeofenceRepository.
func (r *geofenceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fences[id]; !ok {
		return geofence.ErrGeofenceNotFound
	}
	delete(r.fences, id)
	return nil
}

// GetLatestByDepartment implements geofence.GeofenceRepository.
func (r *geofenceRepository) GetLatestByDepartment(ctx context.Context, department string) (geofence.Geofence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		latest geofence.Geofence
		found  bool
	)
	for _, g := range r.fences {
		if g.Department != department {
			continue
		}
		if !found || g.UpdatedAt.After(latest.UpdatedAt) {
			latest, found = g, true
		}
	}
	if !found {
		return geofence.Geofence{}, geofence.ErrGeofenceNotFound
	}
	latest.Vertices = slices.Clone(latest.Vertices)
	return latest, nil
}
