package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"medivoice-api/internal/model"
	"medivoice-api/internal/repository"
)

// Keyword lists mirror the voice agent's triage vocabulary, English and
// Japanese. Matching is substring-based over the lowercased text.
var (
	highKeywords     = []string{"severe", "chest pain", "激しい", "意識"}
	moderateKeywords = []string{"fever", "38", "めまい", "血"}
)

type DiagnosisService struct {
	pool          *pgxpool.Pool
	diagnosisRepo *repository.DiagnosisRepository
	logger        *zap.Logger
}

func NewDiagnosisService(
	pool *pgxpool.Pool,
	diagnosisRepo *repository.DiagnosisRepository,
	logger *zap.Logger,
) *DiagnosisService {
	return &DiagnosisService{
		pool:          pool,
		diagnosisRepo: diagnosisRepo,
		logger:        logger,
	}
}

// Evaluate estimates an emergency level from free-text symptoms.
func Evaluate(symptoms string) (model.EmergencyLevel, string) {
	lowered := strings.ToLower(symptoms)

	level := model.EmergencyLevelLow
	switch {
	case containsAny(lowered, highKeywords):
		level = model.EmergencyLevelHigh
	case containsAny(lowered, moderateKeywords):
		level = model.EmergencyLevelModerate
	}

	summary := fmt.Sprintf("Estimated emergency level from the described symptoms: %s. A medical visit is recommended.", level)
	return level, summary
}

// Diagnose evaluates the symptoms and records the report.
func (s *DiagnosisService) Diagnose(ctx context.Context, symptoms string) (*model.DiagnosisReport, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, fmt.Errorf("%w: symptoms text is required", ErrInvalidRequest)
	}

	level, summary := Evaluate(symptoms)

	report := &model.DiagnosisReport{
		Symptoms:       symptoms,
		EmergencyLevel: level,
		Summary:        summary,
	}

	if err := s.diagnosisRepo.Create(ctx, s.pool, report); err != nil {
		return nil, classify(err)
	}

	s.logger.Info("Diagnosis recorded",
		zap.Int64("report_id", report.ID),
		zap.String("emergency_level", string(level)),
	)

	return report, nil
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
