package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	adminSessionDuration  = 24 * time.Hour
	adminSessionKeyPrefix = "admin_session:"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrLoginDisabled      = errors.New("admin login is not configured")
)

// AdminAuthService authenticates the single administrator with a bcrypt
// password check and a random, hashed, expiring session token held in Redis.
// This replaces the original deployment's presence-only cookie.
type AdminAuthService struct {
	sessions     KV
	passwordHash string
}

func NewAdminAuthService(sessions KV, passwordHash string) *AdminAuthService {
	return &AdminAuthService{
		sessions:     sessions,
		passwordHash: passwordHash,
	}
}

// Login verifies the password and mints a session token. Only the token's
// SHA-256 hash is stored server-side.
func (s *AdminAuthService) Login(ctx context.Context, password string) (string, error) {
	if s.passwordHash == "" {
		return "", ErrLoginDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, tokenHash, err := generateSessionToken()
	if err != nil {
		return "", err
	}

	key := adminSessionKeyPrefix + tokenHash
	if err := s.sessions.Set(ctx, key, "1", adminSessionDuration); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	return token, nil
}

// ValidateSession checks a session token and extends its expiry on success.
func (s *AdminAuthService) ValidateSession(ctx context.Context, token string) error {
	if token == "" {
		return ErrSessionNotFound
	}

	key := adminSessionKeyPrefix + hashSessionToken(token)
	if _, err := s.sessions.Get(ctx, key); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("looking up session: %w", err)
	}

	// Sliding expiry; a lost Expire just shortens the session
	_ = s.sessions.Expire(ctx, key, adminSessionDuration)
	return nil
}

// Logout deletes the session; unknown tokens are a no-op.
func (s *AdminAuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Del(ctx, adminSessionKeyPrefix+hashSessionToken(token))
}

func generateSessionToken() (token string, hash string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}
	token = hex.EncodeToString(bytes)
	return token, hashSessionToken(token), nil
}

func hashSessionToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
