package service_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"medivoice-api/internal/model"
	"medivoice-api/internal/repository"
	"medivoice-api/internal/service"
)

func TestListWithOpenSlots(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	hospital := createHospital(t, env)
	createSlot(t, env, hospital, time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	createSlot(t, env, hospital, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))

	hospitalRepo := repository.NewHospitalRepository(env.pool)
	svc := service.NewHospitalService(env.pool, hospitalRepo, env.slotRepo, zap.NewNop())

	listings, err := svc.ListWithOpenSlots(ctx, 10)
	if err != nil {
		t.Fatalf("list hospitals: %v", err)
	}

	var found *service.HospitalListing
	for _, l := range listings {
		if l.ID == hospital {
			found = l
		}
	}
	if found == nil {
		t.Fatalf("hospital %s missing from listing", hospital)
	}
	if len(found.Slots) != 2 {
		t.Fatalf("got %d open slots, want 2", len(found.Slots))
	}
	if found.Slots[0] != "2025-05-01T09:00:00Z" || found.Slots[1] != "2025-05-01T10:00:00Z" {
		t.Errorf("unexpected slot order: %v", found.Slots)
	}
}

func TestDiagnoseRecordsReport(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	diagnosisRepo := repository.NewDiagnosisRepository(env.pool)
	svc := service.NewDiagnosisService(env.pool, diagnosisRepo, zap.NewNop())

	report, err := svc.Diagnose(ctx, "severe chest pain")
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if report.ID == 0 {
		t.Fatal("report id not assigned")
	}
	if report.EmergencyLevel != model.EmergencyLevelHigh {
		t.Fatalf("emergency level %s, want high", report.EmergencyLevel)
	}

	var stored string
	err = env.pool.QueryRow(ctx,
		`SELECT emergency_level FROM diagnosis_reports WHERE id = $1`, report.ID).Scan(&stored)
	if err != nil {
		t.Fatalf("read back report: %v", err)
	}
	if stored != "high" {
		t.Fatalf("stored level %q, want high", stored)
	}
}
