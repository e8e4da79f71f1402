package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"medivoice-api/internal/service"
)

type createVisitRequest struct {
	HospitalID string `json:"hospital_id"`
	Slot       string `json:"slot"`
	Name       string `json:"name"`
}

type createVisitResponse struct {
	Status  string `json:"status"`
	VisitID int64  `json:"visit_id"`
}

type openSlotsResponse struct {
	HospitalID string   `json:"hospital_id"`
	Slots      []string `json:"slots"`
}

type BookingController struct {
	bookingService *service.BookingService
	logger         *zap.Logger
}

func NewBookingController(bookingService *service.BookingService, logger *zap.Logger) *BookingController {
	return &BookingController{
		bookingService: bookingService,
		logger:         logger,
	}
}

// CreateVisit handles POST /visit.
func (c *BookingController) CreateVisit(w http.ResponseWriter, r *http.Request) {
	var req createVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(c.logger, w, fmt.Errorf("%w: malformed JSON body", service.ErrInvalidRequest))
		return
	}

	visit, err := c.bookingService.Reserve(r.Context(), req.HospitalID, req.Slot, req.Name)
	if err != nil {
		writeError(c.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, createVisitResponse{
		Status:  "ok",
		VisitID: visit.ID,
	})
}

// ListOpenSlots handles GET /hospitals/{hospitalID}/slots.
func (c *BookingController) ListOpenSlots(w http.ResponseWriter, r *http.Request) {
	hospitalID := chi.URLParam(r, "hospitalID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c.logger, w, fmt.Errorf("%w: limit must be an integer", service.ErrInvalidRequest))
			return
		}
		limit = n
	}

	slots, err := c.bookingService.ListOpenSlots(r.Context(), hospitalID, limit)
	if err != nil {
		writeError(c.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, openSlotsResponse{
		HospitalID: hospitalID,
		Slots:      slots,
	})
}
