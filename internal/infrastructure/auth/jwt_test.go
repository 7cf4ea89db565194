package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/obi/gowallet/internal/domain"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	user := &domain.User{
		ID:    "user-1",
		Email: "ada@example.com",
	}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if claims.UserID != user.ID {
		t.Errorf("expected user ID %s, got %s", user.ID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, claims.Email)
	}
}

func TestJWTManagerRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-a", time.Hour)
	other := NewJWTManager("secret-b", time.Hour)

	token, err := manager.Generate(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManagerRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := manager.Verify(token); !errors.Is(err, domain.ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManagerRejectsGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	if _, err := manager.Verify("not.a.token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
