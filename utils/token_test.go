package utils

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewTokenManager("test-secret-key-for-unit-testing-2026", time.Hour)

	token, err := m.Generate("user-1", "alice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected UserID=user-1, got %s", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("expected Username=alice, got %s", claims.Username)
	}
	if claims.Issuer != "gift-exchange-system" {
		t.Errorf("unexpected issuer %s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI should not be empty")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 59*time.Minute || ttl > 61*time.Minute {
		t.Errorf("expected TTL around 1h, got %v", ttl)
	}
}

func TestParse_ExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret-key-for-unit-testing-2026", -time.Minute)

	token, err := m.Generate("user-1", "alice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := m.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got: %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	m := NewTokenManager("secret-a", time.Hour)
	other := NewTokenManager("secret-b", time.Hour)

	token, err := m.Generate("user-1", "alice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := other.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got: %v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	if _, err := m.Parse("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got: %v", err)
	}
}
