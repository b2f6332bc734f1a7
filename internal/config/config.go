package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	BaseURL           string // public URL for join links and QR codes
	DatabaseURL       string
	PhaseTimerSeconds int // default guess-phase timer for new rooms
}

func Load() Config {
	// A missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		PhaseTimerSeconds: getEnvInt("PHASE_TIMER_SECONDS", 60),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
