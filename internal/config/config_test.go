package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PIN_SECRET", "pin-secret")
	t.Setenv("JWT_SECRET", "jwt-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %s", cfg.Port)
	}
	if cfg.Address() != ":5000" {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Fatalf("expected 7 day token ttl, got %v", cfg.TokenTTL)
	}
	if len(cfg.AllowedRoles) != 3 || cfg.AllowedRoles[0] != "sender" {
		t.Fatalf("unexpected roles %v", cfg.AllowedRoles)
	}
	if !cfg.IsDev() {
		t.Fatal("default env should be development")
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("PIN_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without PIN_SECRET")
	}

	t.Setenv("PIN_SECRET", "pin-secret")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadRequiresStoresOutsideDev(t *testing.T) {
	t.Setenv("PIN_SECRET", "pin-secret")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL in production")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/lenden")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without REDIS_URL in production")
	}

	t.Setenv("REDIS_URL", "redis://localhost:6379")
	if _, err := Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
}
