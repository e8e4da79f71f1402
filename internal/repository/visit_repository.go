package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"medivoice-api/internal/model"
	"medivoice-api/internal/repository/base"
)

type VisitRepository struct {
	*base.Repository
}

func NewVisitRepository(pool *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a visit. Runs on the reservation transaction so the visit
// and the slot transition land atomically.
func (r *VisitRepository) Create(ctx context.Context, db base.DB, visit *model.Visit) error {
	query := `
		INSERT INTO visits (hospital_id, slot_id, visitor_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := db.QueryRow(
		ctx, query,
		visit.HospitalID,
		visit.SlotID,
		visit.VisitorName,
	).Scan(&visit.ID, &visit.CreatedAt)

	if err != nil {
		return fmt.Errorf("create visit: %w", err)
	}

	return nil
}

// GetByID gets a visit by ID. Returns nil when not found.
func (r *VisitRepository) GetByID(ctx context.Context, db base.DB, id int64) (*model.Visit, error) {
	query := `
		SELECT id, hospital_id, slot_id, visitor_name, created_at
		FROM visits
		WHERE id = $1
	`

	var visit model.Visit
	err := db.QueryRow(ctx, query, id).Scan(
		&visit.ID,
		&visit.HospitalID,
		&visit.SlotID,
		&visit.VisitorName,
		&visit.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visit by id: %w", err)
	}

	return &visit, nil
}

// CountBySlotID counts visits referencing a slot.
func (r *VisitRepository) CountBySlotID(ctx context.Context, db base.DB, slotID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM visits WHERE slot_id = $1`

	var count int64
	if err := db.QueryRow(ctx, query, slotID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count visits by slot: %w", err)
	}

	return count, nil
}
