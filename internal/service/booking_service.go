package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"medivoice-api/internal/model"
	"medivoice-api/internal/repository"
)

const (
	defaultSlotLimit = 20
	maxSlotLimit     = 100
)

// BookingService is the request-facing boundary: it validates input shape,
// invokes the reservation engine exactly once, and passes the outcome back
// unchanged. Retries, if any, belong to the caller.
type BookingService struct {
	pool        *pgxpool.Pool
	slotRepo    *repository.SlotRepository
	reservation *ReservationService
	logger      *zap.Logger
}

func NewBookingService(
	pool *pgxpool.Pool,
	slotRepo *repository.SlotRepository,
	reservation *ReservationService,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		pool:        pool,
		slotRepo:    slotRepo,
		reservation: reservation,
		logger:      logger,
	}
}

// Reserve validates the raw request and books the slot.
func (s *BookingService) Reserve(ctx context.Context, hospitalID, slotRaw, visitorName string) (*model.Visit, error) {
	hospitalID = strings.TrimSpace(hospitalID)
	if hospitalID == "" {
		return nil, fmt.Errorf("%w: hospital_id is required", ErrInvalidRequest)
	}

	slotTime, err := parseSlotTime(slotRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: slot must be an ISO-8601 timestamp, got %q", ErrInvalidRequest, slotRaw)
	}

	visitorName = strings.TrimSpace(visitorName)
	if visitorName == "" {
		visitorName = model.VisitorNameDefault
	}

	return s.reservation.Reserve(ctx, hospitalID, slotTime, visitorName)
}

// ListOpenSlots returns the hospital's unreserved slot times, ascending,
// as RFC3339 strings. An empty list is a valid answer.
func (s *BookingService) ListOpenSlots(ctx context.Context, hospitalID string, limit int) ([]string, error) {
	hospitalID = strings.TrimSpace(hospitalID)
	if hospitalID == "" {
		return nil, fmt.Errorf("%w: hospital_id is required", ErrInvalidRequest)
	}

	if limit <= 0 {
		limit = defaultSlotLimit
	}
	if limit > maxSlotLimit {
		limit = maxSlotLimit
	}

	slots, err := s.slotRepo.ListOpen(ctx, s.pool, hospitalID, limit)
	if err != nil {
		return nil, classify(err)
	}

	times := make([]string, 0, len(slots))
	for _, slot := range slots {
		times = append(times, slot.StartTime.UTC().Format(time.RFC3339))
	}

	return times, nil
}

// parseSlotTime accepts RFC3339 and, like the browser clients sending
// datetime.isoformat() values, zone-less timestamps, which are read as UTC.
func parseSlotTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02T15:04:05", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
