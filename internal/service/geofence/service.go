package geofence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
)

type GeofenceServiceImpl struct {
	geofence.GeofenceRepository
	fallback []geo.Point
}

// Save implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) Save(ctx context.Context, req geofence.SaveGeofenceRequest) (geofence.GeofenceResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.GeofenceResponse{}, err
	}

	g := geofence.Geofence{
		Department: req.Department,
		Color:      req.Color,
		Vertices:   slices.Clone(req.Coordinates),
	}
	if req.ID != nil {
		g.ID = *req.ID
	} else {
		id, err := uuid.NewV7()
		if err != nil {
			return geofence.GeofenceResponse{}, fmt.Errorf("failed to generate geofence id: %w", err)
		}
		g.ID = id.String()
	}

	// Concurrent saves for one department race; the later write wins.
	saved, err := s.GeofenceRepository.Upsert(ctx, g)
	if err != nil {
		return geofence.GeofenceResponse{}, fmt.Errorf("failed to save geofence: %w", err)
	}

	slog.Info("Saved geofence", "geofence_id", saved.ID, "department", saved.Department, "vertices", len(saved.Vertices))
	return geofence.NewGeofenceResponse(saved), nil
}

// List implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) List(ctx context.Context) ([]geofence.GeofenceResponse, error) {
	fences, err := s.GeofenceRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list geofences: %w", err)
	}

	out := make([]geofence.GeofenceResponse, 0, len(fences))
	for _, g := range fences {
		out = append(out, geofence.NewGeofenceResponse(g))
	}
	return out, nil
}

// Delete implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) Delete(ctx context.Context, req geofence.DeleteGeofenceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.GeofenceRepository.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, geofence.ErrGeofenceNotFound) {
			return geofence.ErrGeofenceNotFound
		}
		return fmt.Errorf("failed to delete geofence: %w", err)
	}

	slog.Info("Deleted geofence", "geofence_id", req.ID)
	return nil
}

// GetByDepartment implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) GetByDepartment(ctx context.Context, req geofence.DepartmentGeofenceRequest) (geofence.GeofenceResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.GeofenceResponse{}, err
	}

	g, err := s.GeofenceRepository.GetLatestByDepartment(ctx, req.Department)
	if err != nil {
		if errors.Is(err, geofence.ErrGeofenceNotFound) {
			return geofence.GeofenceResponse{}, geofence.ErrGeofenceNotFound
		}
		return geofence.GeofenceResponse{}, fmt.Errorf("failed to get department geofence: %w", err)
	}

	return geofence.NewGeofenceResponse(g), nil
}

// ResolvePolygon implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) ResolvePolygon(ctx context.Context, department string) ([]geo.Point, error) {
	g, err := s.GeofenceRepository.GetLatestByDepartment(ctx, department)
	if err == nil {
		return g.Vertices, nil
	}
	if !errors.Is(err, geofence.ErrGeofenceNotFound) {
		return nil, fmt.Errorf("failed to get department geofence: %w", err)
	}

	if len(s.fallback) >= geofence.MinVertices {
		return s.fallback, nil
	}
	return nil, geofence.ErrGeofenceNotFound
}

// NewGeofenceService builds the registry. fallback is used for departments
// without a polygon and may be empty.
func NewGeofenceService(geofenceRepo geofence.GeofenceRepository, fallback []geo.Point) geofence.GeofenceService {
	return &GeofenceServiceImpl{
		GeofenceRepository: geofenceRepo,
		fallback:           slices.Clone(fallback),
	}
}
