package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"medivoice-api/internal/app"
	"medivoice-api/internal/config"
	"medivoice-api/internal/controller"
	"medivoice-api/internal/realtime"
	"medivoice-api/internal/repository"
	"medivoice-api/internal/service"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Repositories
	slotRepo := repository.NewSlotRepository(pool)
	visitRepo := repository.NewVisitRepository(pool)
	hospitalRepo := repository.NewHospitalRepository(pool)
	diagnosisRepo := repository.NewDiagnosisRepository(pool)

	// Services
	reservationService := service.NewReservationService(pool, slotRepo, visitRepo, logger)
	bookingService := service.NewBookingService(pool, slotRepo, reservationService, logger)
	hospitalService := service.NewHospitalService(pool, hospitalRepo, slotRepo, logger)
	diagnosisService := service.NewDiagnosisService(pool, diagnosisRepo, logger)

	// Collaborators
	realtimeClient := realtime.NewClient(cfg.OpenAIAPIKey, cfg.RealtimeModel, cfg.RealtimeVoice)

	// Controllers
	bookingController := controller.NewBookingController(bookingService, logger)
	hospitalController := controller.NewHospitalController(hospitalService, logger)
	diagnosisController := controller.NewDiagnosisController(diagnosisService, logger)
	realtimeController := controller.NewRealtimeController(realtimeClient, logger)

	router := controller.NewRouter(
		logger,
		cfg.CORSOrigins,
		cfg.RateLimitRPS,
		bookingController,
		hospitalController,
		diagnosisController,
		realtimeController,
	)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}
