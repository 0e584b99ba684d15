package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const geofenceColumns = `id, department, color, vertices, created_at, updated_at`

type geofenceRepository struct {
	db *database.DB
}

func NewGeofenceRepository(db *database.DB) geofence.GeofenceRepository {
	return &geofenceRepository{db: db}
}

func scanGeofence(row pgx.Row) (geofence.Geofence, error) {
	var g geofence.Geofence
	err := row.Scan(&g.ID, &g.Department, &g.Color, &g.Vertices, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// Upsert implements geofence.GeofenceRepository.
func (r *geofenceRepository) Upsert(ctx context.Context, g geofence.Geofence) (geofence.Geofence, error) {
	q := GetQuerier(ctx, r.db)

	// clock_timestamp keeps successive saves ordered inside one transaction.
	query := `
		INSERT INTO geofences (id, department, color, vertices, created_at, updated_at)
		VALUES ($1, $2, $3, $4, clock_timestamp(), clock_timestamp())
		ON CONFLICT (id) DO UPDATE
		SET department = EXCLUDED.department,
			color = EXCLUDED.color,
			vertices = EXCLUDED.vertices,
			updated_at = clock_timestamp()
		RETURNING ` + geofenceColumns

	saved, err := scanGeofence(q.QueryRow(ctx, query, g.ID, g.Department, g.Color, g.Vertices))
	if err != nil {
		return geofence.Geofence{}, fmt.Errorf("failed to save geofence: %w", err)
	}

	return saved, nil
}

// GetByID implements geofence.GeofenceRepository.
func (r *geofenceRepository) GetByID(ctx context.Context, id string) (geofence.Geofence, error) {
	q := GetQuerier(ctx, r.db)

	g, err := scanGeofence(q.QueryRow(ctx, `SELECT `+geofenceColumns+` FROM geofences WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Geofence{}, geofence.ErrGeofenceNotFound
		}
		return geofence.Geofence{}, fmt.Errorf("failed to get geofence: %w", err)
	}

	return g, nil
}

// List implements geofence.GeofenceRepository.
func (r *geofenceRepository) List(ctx context.Context) ([]geofence.Geofence, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+geofenceColumns+` FROM geofences ORDER BY department ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list geofences: %w", err)
	}
	defer rows.Close()

	fences := make([]geofence.Geofence, 0)
	for rows.Next() {
		g, err := scanGeofence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan geofence: %w", err)
		}
		fences = append(fences, g)
	}

	return fences, rows.Err()
}

// Delete implements geofence.GeofenceRepository.
func (r *geofenceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM geofences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete geofence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return geofence.ErrGeofenceNotFound
	}

	return nil
}

// GetLatestByDepartment implements geofence.GeofenceRepository.
func (r *geofenceRepository) GetLatestByDepartment(ctx context.Context, department string) (geofence.Geofence, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + geofenceColumns + `
		FROM geofences
		WHERE department = $1
		ORDER BY updated_at DESC, id DESC
		LIMIT 1
	`

	g, err := scanGeofence(q.QueryRow(ctx, query, department))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Geofence{}, geofence.ErrGeofenceNotFound
		}
		return geofence.Geofence{}, fmt.Errorf("failed to get department geofence: %w", err)
	}

	return g, nil
}
