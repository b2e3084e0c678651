package postgresql

import (
	"context"
	"fmt"

	"github.com/Durgaram26/hrms-sub000/internal/domain/geofence"
	"github.com/Durgaram26/hrms-sub000/internal/pkg/database"
)

type geofenceRepository struct {
	db *database.DB
}

func NewGeofenceRepository(db *database.DB) geofence.Repository {
	return &geofenceRepository{db: db}
}

func (r *geofenceRepository) GetActiveByBranchID(ctx context.Context, branchID string) ([]geofence.GeoFence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, name, center_latitude, center_longitude,
			   radius_meters, is_active, created_at, updated_at
		FROM geofences
		WHERE branch_id = $1 AND is_active = true
	`

	rows, err := q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list geofences: %w", err)
	}
	defer rows.Close()

	var fences []geofence.GeoFence
	for rows.Next() {
		var f geofence.GeoFence
		err := rows.Scan(
			&f.ID, &f.BranchID, &f.Name, &f.CenterLatitude, &f.CenterLongitude,
			&f.RadiusMeters, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan geofence: %w", err)
		}
		fences = append(fences, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate geofences: %w", err)
	}

	return fences, nil
}
