package adapters

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/preplog/backend/internal/domain/error"
)

func TestResetTokenService_Generate(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	service := NewResetTokenService(1*time.Hour, func() time.Time { return fixed })

	raw, hash, expiresAt, err := service.GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken returned error: %v", err)
	}

	// 32 random bytes, hex-encoded
	if len(raw) != 64 {
		t.Errorf("raw token length = %d, want 64", len(raw))
	}
	if hash == raw {
		t.Error("digest must not equal the raw token")
	}
	if got := service.HashResetToken(raw); got != hash {
		t.Errorf("HashResetToken(raw) = %q, want %q", got, hash)
	}
	if want := fixed.Add(1 * time.Hour); !expiresAt.Equal(want) {
		t.Errorf("expiresAt = %v, want %v", expiresAt, want)
	}
}

func TestResetTokenService_GenerateIsRandom(t *testing.T) {
	service := NewResetTokenService(0, nil)

	first, _, _, err := service.GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken returned error: %v", err)
	}
	second, _, _, err := service.GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken returned error: %v", err)
	}

	if first == second {
		t.Error("consecutive tokens must differ")
	}
}

func TestResetTokenService_Verify(t *testing.T) {
	service := NewResetTokenService(1*time.Hour, nil)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	raw, hash, _, err := service.GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken returned error: %v", err)
	}

	tests := []struct {
		name      string
		rawToken  string
		hash      string
		expiresAt time.Time
		wantErr   error
	}{
		{
			name:      "valid token",
			rawToken:  raw,
			hash:      hash,
			expiresAt: now.Add(1 * time.Hour),
			wantErr:   nil,
		},
		{
			name:      "wrong token",
			rawToken:  "not-the-token",
			hash:      hash,
			expiresAt: now.Add(1 * time.Hour),
			wantErr:   domainerror.ErrResetTokenMismatch,
		},
		{
			name:      "expired token with matching hash",
			rawToken:  raw,
			hash:      hash,
			expiresAt: now.Add(-1 * time.Second),
			wantErr:   domainerror.ErrResetTokenExpired,
		},
		{
			name:      "expiry exactly at now fails closed",
			rawToken:  raw,
			hash:      hash,
			expiresAt: now,
			wantErr:   domainerror.ErrResetTokenExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.VerifyResetToken(tt.rawToken, tt.hash, tt.expiresAt, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("VerifyResetToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResetTokenService_HashIsDeterministic(t *testing.T) {
	service := NewResetTokenService(0, nil)

	if service.HashResetToken("abc") != service.HashResetToken("abc") {
		t.Error("digest of the same token must be stable")
	}
	if service.HashResetToken("abc") == service.HashResetToken("abd") {
		t.Error("different tokens must not share a digest")
	}
}
