package adapters

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/preplog/backend/internal/domain/error"
)

const testSecret = "test-signing-secret"

func TestTokenService_IssueAndValidate(t *testing.T) {
	service := NewTokenService(testSecret, 1*time.Hour)
	userID := uuid.New()

	token, err := service.IssueSessionToken(context.Background(), userID, "alice@example.com")
	if err != nil {
		t.Fatalf("IssueSessionToken returned error: %v", err)
	}
	if token.Token == "" {
		t.Fatal("issued token is empty")
	}
	if !token.ExpiresAt.After(time.Now().UTC()) {
		t.Error("issued token already expired")
	}

	claims, err := service.ValidateSessionToken(context.Background(), token.Token)
	if err != nil {
		t.Fatalf("ValidateSessionToken returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("claims.Email = %q, want %q", claims.Email, "alice@example.com")
	}
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	service := NewTokenService(testSecret, 1*time.Hour)

	token, err := service.IssueSessionToken(context.Background(), uuid.New(), "alice@example.com")
	if err != nil {
		t.Fatalf("IssueSessionToken returned error: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token.Token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d segments", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = service.ValidateSessionToken(context.Background(), tampered)
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("ValidateSessionToken(tampered) error = %v, want %v", err, domainerror.ErrInvalidToken)
	}
}

func TestTokenService_RejectsWrongKey(t *testing.T) {
	issuer := NewTokenService(testSecret, 1*time.Hour)
	validator := NewTokenService("another-secret", 1*time.Hour)

	token, err := issuer.IssueSessionToken(context.Background(), uuid.New(), "alice@example.com")
	if err != nil {
		t.Fatalf("IssueSessionToken returned error: %v", err)
	}

	_, err = validator.ValidateSessionToken(context.Background(), token.Token)
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("ValidateSessionToken(wrong key) error = %v, want %v", err, domainerror.ErrInvalidToken)
	}
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	service := NewTokenService(testSecret, 1*time.Nanosecond)

	token, err := service.IssueSessionToken(context.Background(), uuid.New(), "alice@example.com")
	if err != nil {
		t.Fatalf("IssueSessionToken returned error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, err = service.ValidateSessionToken(context.Background(), token.Token)
	if !errors.Is(err, domainerror.ErrExpiredToken) {
		t.Errorf("ValidateSessionToken(expired) error = %v, want %v", err, domainerror.ErrExpiredToken)
	}
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	service := NewTokenService(testSecret, 1*time.Hour)

	_, err := service.ValidateSessionToken(context.Background(), "not-a-token")
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("ValidateSessionToken(garbage) error = %v, want %v", err, domainerror.ErrInvalidToken)
	}
}
