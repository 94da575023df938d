package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func testPasswordHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generating hash: %v", err)
	}
	return string(hash)
}

func TestAdminLogin(t *testing.T) {
	sessions := newFakeKV()
	svc := NewAdminAuthService(sessions, testPasswordHash(t, "correct horse"))

	token, err := svc.Login(context.Background(), "correct horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(token))
	}

	// Only the hash is stored, never the token itself.
	if _, ok := sessions.data[adminSessionKeyPrefix+token]; ok {
		t.Error("raw token must not be a session key")
	}
	key := adminSessionKeyPrefix + hashSessionToken(token)
	if _, ok := sessions.data[key]; !ok {
		t.Error("hashed session key not stored")
	}
	if sessions.ttls[key] != adminSessionDuration {
		t.Errorf("unexpected session TTL %v", sessions.ttls[key])
	}
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	svc := NewAdminAuthService(newFakeKV(), testPasswordHash(t, "correct horse"))

	_, err := svc.Login(context.Background(), "battery staple")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAdminLogin_Disabled(t *testing.T) {
	svc := NewAdminAuthService(newFakeKV(), "")

	_, err := svc.Login(context.Background(), "anything")
	if !errors.Is(err, ErrLoginDisabled) {
		t.Fatalf("expected ErrLoginDisabled, got %v", err)
	}
}

func TestValidateSession(t *testing.T) {
	sessions := newFakeKV()
	svc := NewAdminAuthService(sessions, testPasswordHash(t, "correct horse"))

	token, err := svc.Login(context.Background(), "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.ValidateSession(context.Background(), token); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := svc.ValidateSession(context.Background(), "deadbeef"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if err := svc.ValidateSession(context.Background(), ""); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for empty token, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	sessions := newFakeKV()
	svc := NewAdminAuthService(sessions, testPasswordHash(t, "correct horse"))

	token, err := svc.Login(context.Background(), "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.ValidateSession(context.Background(), token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected session gone after logout, got %v", err)
	}

	// Logging out an unknown or empty token is a no-op.
	if err := svc.Logout(context.Background(), "deadbeef"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
