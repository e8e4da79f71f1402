package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	HTTPAddr      string
	Environment   string
	MigrationsDir string
	CORSOrigins   []string
	RateLimitRPS  int
	OpenAIAPIKey  string
	RealtimeModel string
	RealtimeVoice string
}

func Load() (*Config, error) {
	// Try to load .env (ignore the error when the file is missing)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		Environment:   os.Getenv("ENV"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		RealtimeModel: os.Getenv("OPENAI_REALTIME_MODEL"),
		RealtimeVoice: os.Getenv("OPENAI_REALTIME_VOICE"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.RealtimeModel == "" {
		cfg.RealtimeModel = "gpt-4o-realtime-preview"
	}
	if cfg.RealtimeVoice == "" {
		cfg.RealtimeVoice = "verse"
	}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	cfg.RateLimitRPS = 50
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_RPS must be a positive integer, got %q", v)
		}
		cfg.RateLimitRPS = n
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
