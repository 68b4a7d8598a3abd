// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/preplog/backend/internal/application/adapter"
	domainerror "github.com/preplog/backend/internal/domain/error"
)

// defaultSessionDuration is used when the service is constructed with a
// non-positive duration.
const defaultSessionDuration = 7 * 24 * time.Hour

// SessionClaims represents the claims embedded in a session token.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.SessionTokenService interface with
// HS256-signed JWTs. The signing key is process-wide configuration; nothing
// is persisted, so a token is valid exactly while its signature and expiry
// hold.
type tokenService struct {
	secret   []byte
	duration time.Duration
}

// NewTokenService creates a new session token service instance.
func NewTokenService(secret string, duration time.Duration) adapter.SessionTokenService {
	if duration <= 0 {
		duration = defaultSessionDuration
	}
	return &tokenService{
		secret:   []byte(secret),
		duration: duration,
	}
}

// IssueSessionToken mints a signed, time-bounded session token for the user.
func (s *tokenService) IssueSessionToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.SessionToken, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.duration)

	claims := SessionClaims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "preplog",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainerror.ErrTokenEncoding, err)
	}

	return &adapter.SessionToken{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateSessionToken verifies the token and returns its claims. The parser
// checks the signature before validating any claim, so claims from a token
// with a bad signature are never trusted.
func (s *tokenService) ValidateSessionToken(ctx context.Context, tokenString string) (*adapter.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", domainerror.ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %w", domainerror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID in token", domainerror.ErrInvalidToken)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
