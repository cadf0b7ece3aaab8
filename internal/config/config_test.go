package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_ADDR", "postgres://localhost:5432/aihub")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "dev" || cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("session ttl: %v", cfg.SessionTTL)
	}
	if cfg.VerificationCodeTTL != 24*time.Hour {
		t.Fatalf("code ttl: %v", cfg.VerificationCodeTTL)
	}
	if len(cfg.AllowedDomains) != 3 || cfg.AllowedDomains[0] != "mradvancellc.com" {
		t.Fatalf("allowlist: %v", cfg.AllowedDomains)
	}
	if !cfg.DBAutoMigrate {
		t.Fatalf("expected auto-migrate on by default")
	}
	if cfg.BackendURL != "http://localhost:8000" {
		t.Fatalf("backend url: %q", cfg.BackendURL)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_ADDR", "postgres://localhost:5432/aihub")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing JWT_SECRET")
	}
}

func TestLoad_MissingDBAddr(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_ADDR", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing DB_ADDR")
	}
}

func TestLoad_CustomAllowlist(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_EMAIL_DOMAINS", "example.com, other.org ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.AllowedDomains) != 2 || cfg.AllowedDomains[1] != "other.org" {
		t.Fatalf("allowlist: %v", cfg.AllowedDomains)
	}
}

func TestLoad_BadDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TTL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad SESSION_TTL")
	}
}

func TestLoad_Durations(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("VERIFICATION_CODE_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SessionTTL != time.Hour || cfg.VerificationCodeTTL != 30*time.Minute {
		t.Fatalf("durations: %v %v", cfg.SessionTTL, cfg.VerificationCodeTTL)
	}
}

func TestIsProd(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProd() {
		t.Fatalf("expected prod")
	}
}
