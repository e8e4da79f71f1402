package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"medivoice-api/internal/app"
	"medivoice-api/internal/model"
	"medivoice-api/internal/repository"
	"medivoice-api/internal/service"
)

type testEnv struct {
	pool      *pgxpool.Pool
	slotRepo  *repository.SlotRepository
	visitRepo *repository.VisitRepository
	booking   *service.BookingService
	engine    *service.ReservationService
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)

	migrator, err := app.NewMigrator(pool, "../../migrations")
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if err := migrator.Run(ctx); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	migrator.Close()

	logger := zap.NewNop()
	slotRepo := repository.NewSlotRepository(pool)
	visitRepo := repository.NewVisitRepository(pool)
	engine := service.NewReservationService(pool, slotRepo, visitRepo, logger)
	booking := service.NewBookingService(pool, slotRepo, engine, logger)

	return &testEnv{
		pool:      pool,
		slotRepo:  slotRepo,
		visitRepo: visitRepo,
		booking:   booking,
		engine:    engine,
	}
}

func createHospital(t *testing.T, env *testEnv) string {
	t.Helper()
	id := "h_test_" + uuid.NewString()[:8]
	_, err := env.pool.Exec(context.Background(),
		`INSERT INTO hospitals (id, name, distance_km) VALUES ($1, $2, 1.0)`,
		id, "Test Hospital "+id)
	if err != nil {
		t.Fatalf("create hospital: %v", err)
	}
	return id
}

func createSlot(t *testing.T, env *testEnv, hospitalID string, start time.Time) *model.Slot {
	t.Helper()
	slot := &model.Slot{HospitalID: hospitalID, StartTime: start}
	if err := env.slotRepo.Create(context.Background(), env.pool, slot); err != nil {
		t.Fatalf("create slot: %v", err)
	}
	return slot
}

// auditSlot checks the invariant: reserved is true iff exactly one visit
// references the slot, never a half-updated state.
func auditSlot(t *testing.T, env *testEnv, slotID int64) {
	t.Helper()
	ctx := context.Background()

	var reserved bool
	var visitID *int64
	var reservedAt *time.Time
	err := env.pool.QueryRow(ctx,
		`SELECT reserved, visit_id, reserved_at FROM slots WHERE id = $1`, slotID).
		Scan(&reserved, &visitID, &reservedAt)
	if err != nil {
		t.Fatalf("audit slot: %v", err)
	}

	count, err := env.visitRepo.CountBySlotID(ctx, env.pool, slotID)
	if err != nil {
		t.Fatalf("count visits: %v", err)
	}

	if reserved {
		if visitID == nil || reservedAt == nil {
			t.Fatal("reserved slot missing visit link or timestamp")
		}
		if count != 1 {
			t.Fatalf("reserved slot referenced by %d visits, want 1", count)
		}
	} else {
		if visitID != nil || reservedAt != nil {
			t.Fatal("open slot carries visit link or timestamp")
		}
		if count != 0 {
			t.Fatalf("open slot referenced by %d visits, want 0", count)
		}
	}
}

func TestReserveThenConflict(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	hospital := createHospital(t, env)
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	slot := createSlot(t, env, hospital, start)

	visit, err := env.booking.Reserve(ctx, hospital, "2025-01-01T10:00:00Z", "Tanaka")
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if visit.ID == 0 {
		t.Fatal("visit id not assigned")
	}
	if visit.SlotID != slot.ID {
		t.Fatalf("visit bound to slot %d, want %d", visit.SlotID, slot.ID)
	}

	got, err := env.slotRepo.Find(ctx, env.pool, hospital, start)
	if err != nil {
		t.Fatalf("find slot: %v", err)
	}
	if !got.Reserved {
		t.Fatal("slot not marked reserved")
	}
	auditSlot(t, env, slot.ID)

	// Same parameters again must lose
	_, err = env.booking.Reserve(ctx, hospital, "2025-01-01T10:00:00Z", "Suzuki")
	if !errors.Is(err, service.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	auditSlot(t, env, slot.ID)
}

func TestReserveUnknownSlot(t *testing.T) {
	env := setup(t)

	hospital := createHospital(t, env)

	_, err := env.booking.Reserve(context.Background(), hospital, "2025-01-01T11:00:00Z", "")
	if !errors.Is(err, service.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestReserveDefaultsVisitorName(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	hospital := createHospital(t, env)
	createSlot(t, env, hospital, time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))

	visit, err := env.booking.Reserve(ctx, hospital, "2025-02-01T09:00:00Z", "   ")
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	stored, err := env.visitRepo.GetByID(ctx, env.pool, visit.ID)
	if err != nil {
		t.Fatalf("get visit: %v", err)
	}
	if stored.VisitorName != model.VisitorNameDefault {
		t.Fatalf("visitor name %q, want %q", stored.VisitorName, model.VisitorNameDefault)
	}
}

func TestConcurrentReservationSingleWinner(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	hospital := createHospital(t, env)
	slot := createSlot(t, env, hospital, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))

	const n = 16
	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.booking.Reserve(ctx, hospital, "2025-01-01T12:00:00Z", fmt.Sprintf("racer-%d", i))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, service.ErrSlotTaken):
			conflicts++
		default:
			t.Errorf("unexpected outcome: %v", err)
		}
	}

	if successes != 1 {
		t.Fatalf("%d winners, want exactly 1", successes)
	}
	if conflicts != n-1 {
		t.Fatalf("%d conflicts, want %d", conflicts, n-1)
	}

	auditSlot(t, env, slot.ID)
	t.Logf("concurrent: %d success, %d conflicts (out of %d)", successes, conflicts, n)
}

func TestDistinctSlotsDoNotBlock(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	hospital := createHospital(t, env)
	slotA := createSlot(t, env, hospital, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	slotB := createSlot(t, env, hospital, time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = env.engine.Reserve(ctx, hospital, slotA.StartTime, "a")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = env.engine.Reserve(ctx, hospital, slotB.StartTime, "b")
	}()
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("reservation %d failed: %v", i, err)
		}
	}

	auditSlot(t, env, slotA.ID)
	auditSlot(t, env, slotB.ID)
}

func TestListOpenSlotsOrderedAndIdempotent(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	hospital := createHospital(t, env)
	// Created out of order on purpose
	createSlot(t, env, hospital, time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC))
	createSlot(t, env, hospital, time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC))
	createSlot(t, env, hospital, time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC))

	want := []string{
		"2025-04-01T10:00:00Z",
		"2025-04-01T11:00:00Z",
		"2025-04-01T12:00:00Z",
	}

	first, err := env.booking.ListOpenSlots(ctx, hospital, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != len(want) {
		t.Fatalf("got %d slots, want %d", len(first), len(want))
	}
	for i := range want {
		if first[i] != want[i] {
			t.Errorf("slot[%d] = %s, want %s", i, first[i], want[i])
		}
	}

	// No intervening writes: identical answer
	second, err := env.booking.ListOpenSlots(ctx, hospital, 10)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("second read differs in length: %d vs %d", len(second), len(first))
	}
	for i := range first {
		if second[i] != first[i] {
			t.Errorf("second read differs at %d: %s vs %s", i, second[i], first[i])
		}
	}

	// A reservation removes exactly the booked slot from the listing
	if _, err := env.booking.Reserve(ctx, hospital, "2025-04-01T11:00:00Z", ""); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	after, err := env.booking.ListOpenSlots(ctx, hospital, 10)
	if err != nil {
		t.Fatalf("list after reserve: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("got %d open slots after reserve, want 2", len(after))
	}
	if after[0] != want[0] || after[1] != want[2] {
		t.Errorf("unexpected listing after reserve: %v", after)
	}

	// Limit caps the sequence from the front
	capped, err := env.booking.ListOpenSlots(ctx, hospital, 1)
	if err != nil {
		t.Fatalf("capped list: %v", err)
	}
	if len(capped) != 1 || capped[0] != want[0] {
		t.Errorf("capped listing = %v, want [%s]", capped, want[0])
	}
}

func TestListOpenSlotsEmptyHospital(t *testing.T) {
	env := setup(t)

	hospital := createHospital(t, env)

	slots, err := env.booking.ListOpenSlots(context.Background(), hospital, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty sequence, got %v", slots)
	}
}
