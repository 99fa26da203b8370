package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
admin:
  session_ttl: 6h
  assist_per_minute: 3
ai:
  model: gpt-4o
  timeout: 20s
market:
  listing_duration_days: 14
  service_fee_percent: 12.5
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Admin.SessionTTL.String() != "6h0m0s" {
		t.Fatalf("unexpected admin session ttl: %s", cfg.Admin.SessionTTL)
	}
	if cfg.Admin.AssistPerMinute != 3 {
		t.Fatalf("unexpected assist_per_minute: %d", cfg.Admin.AssistPerMinute)
	}
	if cfg.AI.Model != "gpt-4o" {
		t.Fatalf("unexpected ai model: %s", cfg.AI.Model)
	}
	if cfg.AI.Timeout.String() != "20s" {
		t.Fatalf("unexpected ai timeout: %s", cfg.AI.Timeout)
	}
	if cfg.Market.ListingDurationDays != 14 {
		t.Fatalf("unexpected listing duration: %d", cfg.Market.ListingDurationDays)
	}
	if cfg.Market.ServiceFeePercent != 12.5 {
		t.Fatalf("unexpected service fee: %f", cfg.Market.ServiceFeePercent)
	}

	if cfg.Admin.LoginPerMinute != 10 {
		t.Fatalf("login_per_minute default should stay 10, got %d", cfg.Admin.LoginPerMinute)
	}
	if !cfg.Market.RequireEmailVerification {
		t.Fatalf("require_email_verification default should stay true")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Admin.JWTAccessTTL.String() != "15m0s" {
		t.Fatalf("unexpected default jwt access ttl: %s", cfg.Admin.JWTAccessTTL)
	}
	if cfg.Market.ListingDurationDays != 30 {
		t.Fatalf("unexpected default listing duration: %d", cfg.Market.ListingDurationDays)
	}
	if cfg.Market.MaxImagesDefault != 5 {
		t.Fatalf("unexpected default max images: %d", cfg.Market.MaxImagesDefault)
	}
	if cfg.AI.BaseURL == "" {
		t.Fatalf("ai base_url default should not be empty")
	}
}

func TestEnvOverridesWin(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://env-dsn")
	t.Setenv("ADMIN_JWT_SECRET", "env-secret")
	t.Setenv("AI_TIMEOUT", "5s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Postgres.DSN != "postgres://env-dsn" {
		t.Fatalf("unexpected dsn: %s", cfg.Postgres.DSN)
	}
	if cfg.Admin.JWTSecret != "env-secret" {
		t.Fatalf("unexpected jwt secret: %s", cfg.Admin.JWTSecret)
	}
	if cfg.AI.Timeout.String() != "5s" {
		t.Fatalf("unexpected ai timeout: %s", cfg.AI.Timeout)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"S3_USE_SSL",
		"ADMIN_JWT_SECRET",
		"ADMIN_JWT_ACCESS_TTL",
		"ADMIN_SESSION_TTL",
		"ADMIN_LOGIN_PER_MINUTE",
		"ADMIN_ASSIST_PER_MINUTE",
		"AI_BASE_URL",
		"AI_API_KEY",
		"AI_MODEL",
		"AI_TIMEOUT",
		"MARKET_LISTING_DURATION_DAYS",
		"MARKET_CLEANUP_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}
