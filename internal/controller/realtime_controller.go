package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"medivoice-api/internal/realtime"
)

type tokenResponse struct {
	ClientSecret json.RawMessage `json:"client_secret"`
}

type RealtimeController struct {
	client *realtime.Client
	logger *zap.Logger
}

func NewRealtimeController(client *realtime.Client, logger *zap.Logger) *RealtimeController {
	return &RealtimeController{
		client: client,
		logger: logger,
	}
}

// CreateToken handles POST /realtime/token.
func (c *RealtimeController) CreateToken(w http.ResponseWriter, r *http.Request) {
	secret, err := c.client.CreateEphemeralToken(r.Context())
	if err != nil {
		if errors.Is(err, realtime.ErrNotConfigured) {
			c.logger.Warn("Realtime token requested without API key configured")
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Status:  "error",
				Error:   "internal",
				Message: "OPENAI_API_KEY not set",
			})
			return
		}

		c.logger.Error("Realtime session creation failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Status:  "error",
			Error:   "unavailable",
			Message: "realtime session upstream failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{ClientSecret: secret})
}
