package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"medivoice-api/internal/model"
	"medivoice-api/internal/repository/base"
)

type DiagnosisRepository struct {
	*base.Repository
}

func NewDiagnosisRepository(pool *pgxpool.Pool) *DiagnosisRepository {
	return &DiagnosisRepository{Repository: base.NewRepository(pool)}
}

// Create appends a triage report.
func (r *DiagnosisRepository) Create(ctx context.Context, db base.DB, report *model.DiagnosisReport) error {
	query := `
		INSERT INTO diagnosis_reports (symptoms, emergency_level, summary)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := db.QueryRow(
		ctx, query,
		report.Symptoms,
		report.EmergencyLevel,
		report.Summary,
	).Scan(&report.ID, &report.CreatedAt)

	if err != nil {
		return fmt.Errorf("create diagnosis report: %w", err)
	}

	return nil
}
