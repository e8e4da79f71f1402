package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"medivoice-api/internal/model"
	"medivoice-api/internal/repository/base"
)

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

// Create creates a new slot. Slot provisioning is an operational concern,
// used here by migrations seeding and tests.
func (r *SlotRepository) Create(ctx context.Context, db base.DB, slot *model.Slot) error {
	query := `
		INSERT INTO slots (hospital_id, start_time)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := db.QueryRow(ctx, query, slot.HospitalID, slot.StartTime).
		Scan(&slot.ID, &slot.CreatedAt)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// Find locates a slot by hospital and exact start time.
// Returns nil when no such slot exists.
func (r *SlotRepository) Find(ctx context.Context, db base.DB, hospitalID string, startTime time.Time) (*model.Slot, error) {
	return r.find(ctx, db, hospitalID, startTime, "")
}

// FindForUpdate is Find with an exclusive row lock, scoped to the single
// target row. Must run on an open transaction; the lock is held until the
// transaction commits or rolls back.
func (r *SlotRepository) FindForUpdate(ctx context.Context, db base.DB, hospitalID string, startTime time.Time) (*model.Slot, error) {
	return r.find(ctx, db, hospitalID, startTime, "FOR UPDATE")
}

func (r *SlotRepository) find(ctx context.Context, db base.DB, hospitalID string, startTime time.Time, locking string) (*model.Slot, error) {
	query := `
		SELECT id, hospital_id, start_time, reserved, reserved_at, visit_id, created_at
		FROM slots
		WHERE hospital_id = $1 AND start_time = $2
		` + locking

	var slot model.Slot
	err := db.QueryRow(ctx, query, hospitalID, startTime).Scan(
		&slot.ID,
		&slot.HospitalID,
		&slot.StartTime,
		&slot.Reserved,
		&slot.ReservedAt,
		&slot.VisitID,
		&slot.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find slot: %w", err)
	}

	return &slot, nil
}

// Reserve flips the slot to reserved, stamping the visit link and timestamp,
// but only if it is currently unreserved. Zero affected rows means the slot
// was already taken.
func (r *SlotRepository) Reserve(ctx context.Context, db base.DB, slotID, visitID int64, reservedAt time.Time) (bool, error) {
	query := `
		UPDATE slots
		SET reserved = true, visit_id = $1, reserved_at = $2
		WHERE id = $3 AND reserved = false
	`

	affected, err := r.ExecAffected(ctx, db, query, visitID, reservedAt, slotID)
	if err != nil {
		return false, fmt.Errorf("reserve slot: %w", err)
	}

	return affected == 1, nil
}

// ListOpen returns unreserved slots for a hospital ordered by start time
// ascending, capped at limit. An empty result is not an error.
func (r *SlotRepository) ListOpen(ctx context.Context, db base.DB, hospitalID string, limit int) ([]*model.Slot, error) {
	query := `
		SELECT id, hospital_id, start_time, reserved, reserved_at, visit_id, created_at
		FROM slots
		WHERE hospital_id = $1 AND reserved = false
		ORDER BY start_time
		LIMIT $2
	`

	rows, err := db.Query(ctx, query, hospitalID, limit)
	if err != nil {
		return nil, fmt.Errorf("list open slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.HospitalID,
			&slot.StartTime,
			&slot.Reserved,
			&slot.ReservedAt,
			&slot.VisitID,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open slots: %w", err)
	}

	return slots, nil
}
