// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered PrepLog account.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string

	// ResetTokenHash and ResetTokenExpiresAt are set together while a password
	// reset is pending and cleared together when the reset is confirmed or
	// abandoned. They are never present one without the other.
	ResetTokenHash      *string
	ResetTokenExpiresAt *time.Time

	// CompletedQuestions holds the IDs of practice questions the user has
	// marked as done, in insertion order.
	CompletedQuestions []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new User with a fresh ID and a normalized email.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              NormalizeEmail(email),
		Name:               name,
		PasswordHash:       passwordHash,
		CompletedQuestions: []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// NormalizeEmail lowercases and trims an email address so that uniqueness
// checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetResetToken records a pending password reset. Any previously pending
// token is overwritten.
func (u *User) SetResetToken(tokenHash string, expiresAt time.Time) {
	u.ResetTokenHash = &tokenHash
	u.ResetTokenExpiresAt = &expiresAt
}

// ClearResetToken removes a pending password reset.
func (u *User) ClearResetToken() {
	u.ResetTokenHash = nil
	u.ResetTokenExpiresAt = nil
}

// HasPendingReset reports whether a reset token is stored and not yet expired
// at the given instant.
func (u *User) HasPendingReset(now time.Time) bool {
	return u.ResetTokenHash != nil && u.ResetTokenExpiresAt != nil && now.Before(*u.ResetTokenExpiresAt)
}

// HasCompletedQuestion reports whether the question ID is in the user's
// completed set.
func (u *User) HasCompletedQuestion(questionID string) bool {
	for _, id := range u.CompletedQuestions {
		if id == questionID {
			return true
		}
	}
	return false
}
