package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGIN", "")
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.AllowedOrigin != "http://127.0.0.1:3000" {
		t.Fatalf("unexpected default origin %q", cfg.AllowedOrigin)
	}
	if cfg.ReportTTLSeconds != 60 {
		t.Fatalf("expected report TTL 60, got %d", cfg.ReportTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected token TTL 480, got %d", cfg.AccessTokenTTLMinutes)
	}
	if cfg.AuthSecret != "" {
		t.Fatalf("AUTH_SECRET must have no default, got %q", cfg.AuthSecret)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_SECRET", "  secret-with-padding  ")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "5")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "60")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.Address() != ":9090" {
		t.Fatalf("expected address :9090, got %q", cfg.Address())
	}
	if cfg.AuthSecret != "secret-with-padding" {
		t.Fatalf("expected trimmed secret, got %q", cfg.AuthSecret)
	}
	if cfg.ReportTTLSeconds != 5 {
		t.Fatalf("expected report TTL 5, got %d", cfg.ReportTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 60 {
		t.Fatalf("expected token TTL 60, got %d", cfg.AccessTokenTTLMinutes)
	}
}

func TestLoadRejectsBadTTLValues(t *testing.T) {
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "-3")

	cfg := Load()
	if cfg.ReportTTLSeconds != 60 {
		t.Fatalf("expected fallback TTL 60, got %d", cfg.ReportTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected fallback token TTL 480, got %d", cfg.AccessTokenTTLMinutes)
	}
}
