package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=payroll_system port=5432 sslmode=disable"

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string
	CompanyName string // printed on report exports
}

func Load() *Config {
	// .env is optional, real deployments set env vars directly
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		CompanyName: getEnv("COMPANY_NAME", "SAVUNADRY CONSTRUCTION"),
	}

	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN not set, using local development defaults.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
