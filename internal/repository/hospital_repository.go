package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"medivoice-api/internal/model"
	"medivoice-api/internal/repository/base"
)

type HospitalRepository struct {
	*base.Repository
}

func NewHospitalRepository(pool *pgxpool.Pool) *HospitalRepository {
	return &HospitalRepository{Repository: base.NewRepository(pool)}
}

// List returns all reference hospitals ordered by distance.
func (r *HospitalRepository) List(ctx context.Context, db base.DB) ([]*model.Hospital, error) {
	query := `
		SELECT id, name, distance_km
		FROM hospitals
		ORDER BY distance_km, id
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	defer rows.Close()

	var hospitals []*model.Hospital
	for rows.Next() {
		var h model.Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.DistanceKm); err != nil {
			return nil, fmt.Errorf("scan hospital: %w", err)
		}
		hospitals = append(hospitals, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}

	return hospitals, nil
}

// GetByID gets a hospital by ID. Returns nil when not found.
func (r *HospitalRepository) GetByID(ctx context.Context, db base.DB, id string) (*model.Hospital, error) {
	query := `
		SELECT id, name, distance_km
		FROM hospitals
		WHERE id = $1
	`

	var h model.Hospital
	err := db.QueryRow(ctx, query, id).Scan(&h.ID, &h.Name, &h.DistanceKm)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hospital by id: %w", err)
	}

	return &h, nil
}
