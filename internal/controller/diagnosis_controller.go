package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"medivoice-api/internal/service"
)

type diagnoseRequest struct {
	Symptoms string `json:"symptoms"`
}

type diagnoseResponse struct {
	EmergencyLevel string `json:"emergency_level"`
	MedicalReport  string `json:"medical_report"`
}

type DiagnosisController struct {
	diagnosisService *service.DiagnosisService
	logger           *zap.Logger
}

func NewDiagnosisController(diagnosisService *service.DiagnosisService, logger *zap.Logger) *DiagnosisController {
	return &DiagnosisController{
		diagnosisService: diagnosisService,
		logger:           logger,
	}
}

// Diagnose handles POST /diagnose.
func (c *DiagnosisController) Diagnose(w http.ResponseWriter, r *http.Request) {
	var req diagnoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(c.logger, w, fmt.Errorf("%w: malformed JSON body", service.ErrInvalidRequest))
		return
	}

	report, err := c.diagnosisService.Diagnose(r.Context(), req.Symptoms)
	if err != nil {
		writeError(c.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, diagnoseResponse{
		EmergencyLevel: string(report.EmergencyLevel),
		MedicalReport:  report.Summary,
	})
}
