package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"medivoice-api/internal/service"
)

type errorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps a service failure onto the wire: one of the four error
// categories, never a raw internal message for unexpected faults.
func writeError(logger *zap.Logger, w http.ResponseWriter, err error) {
	code, category := statusForError(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		logger.Error("Unhandled error", zap.Error(err))
		message = "internal error"
	}

	writeJSON(w, code, errorResponse{
		Status:  "error",
		Error:   category,
		Message: message,
	})
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, service.ErrSlotNotFound):
		return http.StatusNotFound, "slot_not_found"
	case errors.Is(err, service.ErrSlotTaken):
		return http.StatusConflict, "slot_already_reserved"
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
