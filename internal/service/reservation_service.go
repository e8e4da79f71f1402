package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"medivoice-api/internal/model"
	"medivoice-api/internal/repository"
)

// lockTimeout bounds how long a reservation waits for the slot row lock.
// A timed-out wait aborts the transaction and surfaces as ErrUnavailable.
const lockTimeout = "3s"

// ReservationService implements the atomic booking protocol: exactly one
// concurrent caller wins a slot, everyone else sees it already reserved.
type ReservationService struct {
	pool      *pgxpool.Pool
	slotRepo  *repository.SlotRepository
	visitRepo *repository.VisitRepository
	logger    *zap.Logger
}

func NewReservationService(
	pool *pgxpool.Pool,
	slotRepo *repository.SlotRepository,
	visitRepo *repository.VisitRepository,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		pool:      pool,
		slotRepo:  slotRepo,
		visitRepo: visitRepo,
		logger:    logger,
	}
}

// Reserve books the slot at (hospitalID, slotTime) for visitorName.
//
// The check-then-set sequence runs in one transaction under an exclusive
// lock on the single target row, so the visit insert and the slot update
// commit together or not at all. Row scope keeps unrelated bookings from
// blocking each other.
func (s *ReservationService) Reserve(ctx context.Context, hospitalID string, slotTime time.Time, visitorName string) (*model.Visit, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, infraErr("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	// Bound the row-lock wait; applies to this transaction only
	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		return nil, infraErr("set lock timeout", err)
	}

	slot, err := s.slotRepo.FindForUpdate(ctx, tx, hospitalID, slotTime)
	if err != nil {
		return nil, classify(err)
	}

	if slot == nil {
		return nil, fmt.Errorf("%w: hospital %s has no slot at %s",
			ErrSlotNotFound, hospitalID, slotTime.Format(time.RFC3339))
	}

	// Re-check under the lock: a racer that committed while we waited
	// left the flag set
	if slot.Reserved {
		return nil, fmt.Errorf("%w: hospital %s at %s",
			ErrSlotTaken, hospitalID, slotTime.Format(time.RFC3339))
	}

	visit := &model.Visit{
		HospitalID:  slot.HospitalID,
		SlotID:      slot.ID,
		VisitorName: visitorName,
	}

	if err := s.visitRepo.Create(ctx, tx, visit); err != nil {
		return nil, classify(err)
	}

	ok, err := s.slotRepo.Reserve(ctx, tx, slot.ID, visit.ID, time.Now().UTC())
	if err != nil {
		return nil, classify(err)
	}
	if !ok {
		// Unreachable while we hold the row lock; report as a conflict
		// rather than commit an inconsistent pair
		return nil, fmt.Errorf("%w: hospital %s at %s",
			ErrSlotTaken, hospitalID, slotTime.Format(time.RFC3339))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, infraErr("commit transaction", err)
	}

	s.logger.Info("Slot reserved",
		zap.Int64("visit_id", visit.ID),
		zap.Int64("slot_id", slot.ID),
		zap.String("hospital_id", hospitalID),
		zap.Time("slot_time", slotTime),
	)

	return visit, nil
}

func infraErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

// classify maps storage-level failures onto the service taxonomy. Anything
// that is not a slot-state outcome is a transient infrastructure failure:
// the transaction rolled back whole, so retrying the same request is safe.
func classify(err error) error {
	if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrSlotTaken) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03": // lock_not_available
			return fmt.Errorf("%w: lock acquisition timed out: %v", ErrUnavailable, err)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: transaction aborted: %v", ErrUnavailable, err)
		}
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
