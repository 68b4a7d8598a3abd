// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionToken represents a signed bearer session token and its expiry. The
// expiry is exposed so callers can attach the token as an expiring cookie.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenClaims represents the claims contained in a validated session token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// SessionTokenService defines the interface for session token operations.
// Sessions are stateless: validity is determined purely by signature and
// expiry, nothing is persisted server-side.
type SessionTokenService interface {
	// IssueSessionToken mints a signed, time-bounded token for the user.
	IssueSessionToken(ctx context.Context, userID uuid.UUID, email string) (*SessionToken, error)

	// ValidateSessionToken verifies the token signature, then its expiry, and
	// returns the embedded claims. Claims from a token whose signature fails
	// are never returned.
	ValidateSessionToken(ctx context.Context, token string) (*TokenClaims, error)
}

// ResetTokenService defines the interface for password reset token material.
// The raw token is the sole secret; only its digest is ever persisted.
type ResetTokenService interface {
	// GenerateResetToken produces a cryptographically random raw token, its
	// one-way digest, and the expiry of the reset window.
	GenerateResetToken() (rawToken, tokenHash string, expiresAt time.Time, err error)

	// HashResetToken computes the digest of a raw token for storage lookups.
	HashResetToken(rawToken string) string

	// VerifyResetToken checks a raw token against a stored digest and expiry.
	// Returns domain ErrResetTokenMismatch on digest mismatch and
	// ErrResetTokenExpired when the expiry is not after now, even if the
	// digest matches.
	VerifyResetToken(rawToken, storedHash string, expiresAt, now time.Time) error
}
