package main

import (
	"context"
	"flag"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"medivoice-api/internal/app"
	"medivoice-api/internal/config"
)

// Standalone migration runner: `migrate -cmd up` (default) or `-cmd version`.
func main() {
	cmd := flag.String("cmd", "up", "up | version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to create migrator: %v", err)
	}
	defer migrator.Close()

	switch *cmd {
	case "up":
		if err := migrator.Run(ctx); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	case "version":
		version, err := migrator.Version(ctx)
		if err != nil {
			log.Fatalf("Failed to get version: %v", err)
		}
		log.Printf("Current migration version: %d", version)
	default:
		log.Fatalf("Unknown command %q", *cmd)
	}
}
