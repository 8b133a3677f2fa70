package main

import (
	"strings"
	"testing"

	"ketoan/backend/internal/config"
)

func TestValidateSecurityConfigRejectsShortSecret(t *testing.T) {
	for _, secret := range []string{"", "short", strings.Repeat("x", 31)} {
		cfg := config.Config{AuthSecret: secret}
		if err := validateSecurityConfig(cfg); err == nil {
			t.Fatalf("expected rejection for secret of length %d", len(secret))
		}
	}
}

func TestValidateSecurityConfigAcceptsLongSecret(t *testing.T) {
	cfg := config.Config{AuthSecret: strings.Repeat("x", 32)}
	if err := validateSecurityConfig(cfg); err != nil {
		t.Fatalf("expected 32-char secret to be accepted: %v", err)
	}
}
