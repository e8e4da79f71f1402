package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"medivoice-api/internal/service"
)

func newTestBookingController() *BookingController {
	logger := zap.NewNop()
	// nil pool is fine: these requests must be rejected before storage
	engine := service.NewReservationService(nil, nil, nil, logger)
	booking := service.NewBookingService(nil, nil, engine, logger)
	return NewBookingController(booking, logger)
}

func TestCreateVisitRejectsMalformedBody(t *testing.T) {
	ctrl := newTestBookingController()

	req := httptest.NewRequest(http.MethodPost, "/visit", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	ctrl.CreateVisit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_request")
}

func TestCreateVisitRejectsMissingHospitalID(t *testing.T) {
	ctrl := newTestBookingController()

	body := `{"hospital_id": "", "slot": "2025-01-01T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/visit", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ctrl.CreateVisit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "hospital_id is required")
}

func TestCreateVisitRejectsBadTimestamp(t *testing.T) {
	ctrl := newTestBookingController()

	body := `{"hospital_id": "h_001", "slot": "tomorrow"}`
	req := httptest.NewRequest(http.MethodPost, "/visit", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ctrl.CreateVisit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_request")
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		category string
	}{
		{"invalid request", service.ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
		{"not found", service.ErrSlotNotFound, http.StatusNotFound, "slot_not_found"},
		{"conflict", service.ErrSlotTaken, http.StatusConflict, "slot_already_reserved"},
		{"unavailable", service.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, category := statusForError(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.category, category)
		})
	}
}
