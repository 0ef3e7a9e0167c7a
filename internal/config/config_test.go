package config

import (
	"testing"
	"time"
)

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_NAME", "zenith_test")
	t.Setenv("RATE_LIMIT_WINDOW", "120")
	t.Setenv("RATE_LIMIT_MAX", "50")

	cfg, err := NewConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.DBName != "zenith_test" {
		t.Errorf("DBName = %q", cfg.DBName)
	}
	if cfg.Port != "5000" {
		t.Errorf("default Port = %q, want 5000", cfg.Port)
	}
	if cfg.MaxFileSize != 10485760 {
		t.Errorf("default MaxFileSize = %d", cfg.MaxFileSize)
	}
	if cfg.MaxVideoSize != 104857600 {
		t.Errorf("default MaxVideoSize = %d", cfg.MaxVideoSize)
	}
	if cfg.RateLimitWindow != 120*time.Second {
		t.Errorf("RateLimitWindow = %v", cfg.RateLimitWindow)
	}
	if cfg.RateLimitMax != 50 {
		t.Errorf("RateLimitMax = %d", cfg.RateLimitMax)
	}
}

func TestNewConfigFromEnvRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := NewConfigFromEnv(); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
}
