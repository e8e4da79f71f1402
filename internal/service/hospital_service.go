package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"medivoice-api/internal/model"
	"medivoice-api/internal/repository"
)

// HospitalListing is a hospital with its currently open slot times.
type HospitalListing struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	DistanceKm float64  `json:"distance_km"`
	Slots      []string `json:"slots"`
}

type HospitalService struct {
	pool         *pgxpool.Pool
	hospitalRepo *repository.HospitalRepository
	slotRepo     *repository.SlotRepository
	logger       *zap.Logger
}

func NewHospitalService(
	pool *pgxpool.Pool,
	hospitalRepo *repository.HospitalRepository,
	slotRepo *repository.SlotRepository,
	logger *zap.Logger,
) *HospitalService {
	return &HospitalService{
		pool:         pool,
		hospitalRepo: hospitalRepo,
		slotRepo:     slotRepo,
		logger:       logger,
	}
}

// ListWithOpenSlots returns every reference hospital together with up to
// slotLimit open slot times. Distance comes from stored reference data;
// there is no geocoding.
func (s *HospitalService) ListWithOpenSlots(ctx context.Context, slotLimit int) ([]*HospitalListing, error) {
	if slotLimit <= 0 {
		slotLimit = defaultSlotLimit
	}

	hospitals, err := s.hospitalRepo.List(ctx, s.pool)
	if err != nil {
		return nil, classify(err)
	}

	listings := make([]*HospitalListing, 0, len(hospitals))
	for _, h := range hospitals {
		slots, err := s.slotRepo.ListOpen(ctx, s.pool, h.ID, slotLimit)
		if err != nil {
			return nil, classify(err)
		}

		listing := &HospitalListing{
			ID:         h.ID,
			Name:       h.Name,
			DistanceKm: h.DistanceKm,
			Slots:      make([]string, 0, len(slots)),
		}
		for _, slot := range slots {
			listing.Slots = append(listing.Slots, slot.StartTime.UTC().Format(time.RFC3339))
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

// GetByID returns a single hospital or nil.
func (s *HospitalService) GetByID(ctx context.Context, id string) (*model.Hospital, error) {
	h, err := s.hospitalRepo.GetByID(ctx, s.pool, id)
	if err != nil {
		return nil, classify(err)
	}
	return h, nil
}
