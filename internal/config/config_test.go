package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PHASE_TIMER_SECONDS", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.PhaseTimerSeconds != 60 {
		t.Errorf("PhaseTimerSeconds = %d, want 60", cfg.PhaseTimerSeconds)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PHASE_TIMER_SECONDS", "30")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.PhaseTimerSeconds != 30 {
		t.Errorf("PhaseTimerSeconds = %d, want 30", cfg.PhaseTimerSeconds)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("PHASE_TIMER_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.PhaseTimerSeconds != 60 {
		t.Errorf("PhaseTimerSeconds = %d, want fallback 60", cfg.PhaseTimerSeconds)
	}
}
