// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/preplog/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
// Implementations must provide per-row atomic read-modify-write semantics so
// that concurrent operations on the same user never observe a torn record.
type UserRepository interface {
	// Create creates a new user. Returns domain ErrEmailAlreadyExists when the
	// email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by their normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByResetTokenHash retrieves the user holding the given reset token
	// hash with an expiry strictly after now. Expired tokens are never
	// returned, even when the hash matches.
	FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *entity.User) error

	// ExistsByEmail checks if a user with the given normalized email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ToggleCompletedQuestion adds the question ID to the user's completed set
	// when absent and removes it when present, as a single atomic update.
	// It reports whether the question was added.
	ToggleCompletedQuestion(ctx context.Context, userID uuid.UUID, questionID string) (added bool, err error)
}
