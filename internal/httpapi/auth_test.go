package httpapi

import (
	"testing"
	"time"

	"ketoan/backend/internal/domain"
	"ketoan/backend/internal/store/memory"
)

func newTestAuth(t *testing.T) *AuthManager {
	t.Helper()
	return NewAuthManager("unit-test-secret-0123456789abcdef", time.Hour, memory.NewSeeded())
}

func TestLoginAndParseTokenRoundTrip(t *testing.T) {
	auth := newTestAuth(t)

	resp, err := auth.Login(domain.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	actor, err := auth.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if actor.Username != "admin" || actor.Role != "admin" {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	auth := newTestAuth(t)
	other := NewAuthManager("another-secret-entirely-0123456789", time.Hour, memory.NewSeeded())

	resp, err := other.Login(domain.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := auth.ParseToken(resp.AccessToken); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := newTestAuth(t)
	if _, err := auth.ParseToken("not.a.token"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestCreateUserValidation(t *testing.T) {
	auth := newTestAuth(t)

	cases := []domain.UserCreateRequest{
		{Username: "ab", Password: "secret123"},
		{Username: "has space", Password: "secret123"},
		{Username: "newuser", Password: "123"},
		{Username: "newuser", Password: "secret123", Role: "superuser"},
		{Username: "admin", Password: "secret123"},
	}
	for _, req := range cases {
		if _, err := auth.CreateUser(req); err == nil {
			t.Fatalf("expected rejection for %+v", req)
		}
	}

	user, err := auth.CreateUser(domain.UserCreateRequest{Username: "NewUser", Password: "secret123"})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if user.Username != "newuser" {
		t.Fatalf("expected lowercased username, got %q", user.Username)
	}
	if user.Role != "accountant" {
		t.Fatalf("expected default role accountant, got %q", user.Role)
	}

	if _, err := auth.Login(domain.LoginRequest{Username: "newuser", Password: "secret123"}); err != nil {
		t.Fatalf("new user login failed: %v", err)
	}
}
