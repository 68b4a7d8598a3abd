// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/preplog/backend/internal/application/adapter"
	domainerror "github.com/preplog/backend/internal/domain/error"
)

const (
	// resetTokenBytes is the raw token entropy (256 bits).
	resetTokenBytes = 32
	// defaultResetTokenExpiry is used when the service is constructed with a
	// non-positive window.
	defaultResetTokenExpiry = 1 * time.Hour
)

// resetTokenService implements the adapter.ResetTokenService interface. The
// raw token is a hex-encoded random value; only its sha256 digest is meant to
// be persisted. sha256 is fast but the token space is large and tokens
// expire, so the digest is not attacker-tunable offline.
type resetTokenService struct {
	expiry time.Duration
	now    func() time.Time
}

// NewResetTokenService creates a new reset token service instance. A nil now
// function means time.Now; tests inject a fixed clock to pin expiries.
func NewResetTokenService(expiry time.Duration, now func() time.Time) adapter.ResetTokenService {
	if expiry <= 0 {
		expiry = defaultResetTokenExpiry
	}
	if now == nil {
		now = time.Now
	}
	return &resetTokenService{
		expiry: expiry,
		now:    now,
	}
}

// GenerateResetToken produces a random raw token, its digest, and the expiry
// of the reset window.
func (s *resetTokenService) GenerateResetToken() (string, string, time.Time, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("%w: %w", domainerror.ErrTokenEncoding, err)
	}

	rawToken := hex.EncodeToString(buf)
	expiresAt := s.now().UTC().Add(s.expiry)

	return rawToken, s.HashResetToken(rawToken), expiresAt, nil
}

// HashResetToken computes the sha256 digest of a raw token.
func (s *resetTokenService) HashResetToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

// VerifyResetToken checks a raw token against a stored digest and expiry.
// The expiry is checked independently of the digest and fails closed.
func (s *resetTokenService) VerifyResetToken(rawToken, storedHash string, expiresAt, now time.Time) error {
	if subtle.ConstantTimeCompare([]byte(s.HashResetToken(rawToken)), []byte(storedHash)) != 1 {
		return domainerror.ErrResetTokenMismatch
	}
	if !expiresAt.After(now) {
		return domainerror.ErrResetTokenExpired
	}
	return nil
}
