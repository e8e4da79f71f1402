package controller

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"medivoice-api/internal/service"
)

type hospitalsResponse struct {
	Hospitals []*service.HospitalListing `json:"hospitals"`
}

type HospitalController struct {
	hospitalService *service.HospitalService
	logger          *zap.Logger
}

func NewHospitalController(hospitalService *service.HospitalService, logger *zap.Logger) *HospitalController {
	return &HospitalController{
		hospitalService: hospitalService,
		logger:          logger,
	}
}

// ListHospitals handles GET /hospitals. lat/lon/distance_km are accepted for
// client compatibility; distance is stored reference data, not computed.
func (c *HospitalController) ListHospitals(w http.ResponseWriter, r *http.Request) {
	slotLimit := 0
	if raw := r.URL.Query().Get("slot_limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			slotLimit = n
		}
	}

	listings, err := c.hospitalService.ListWithOpenSlots(r.Context(), slotLimit)
	if err != nil {
		writeError(c.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, hospitalsResponse{Hospitals: listings})
}
