// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/preplog/backend/internal/application/adapter"
	domainerror "github.com/preplog/backend/internal/domain/error"
)

// UpdatePasswordInput represents the input for an authenticated password change.
type UpdatePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdatePasswordOutput represents the output of a password change.
type UpdatePasswordOutput struct {
	Token *adapter.SessionToken
}

// UpdatePasswordUseCase handles password changes for authenticated users.
// Previously issued session tokens stay valid until their natural expiry;
// sessions are stateless and are not revoked here.
type UpdatePasswordUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.SessionTokenService
}

// NewUpdatePasswordUseCase creates a new UpdatePasswordUseCase instance.
func NewUpdatePasswordUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.SessionTokenService,
) *UpdatePasswordUseCase {
	return &UpdatePasswordUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the password change.
func (uc *UpdatePasswordUseCase) Execute(ctx context.Context, input UpdatePasswordInput) (*UpdatePasswordOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.OldPassword); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"old password is incorrect",
			domainerror.ErrInvalidCredentials,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.NewPassword); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user password: %w", err)
	}

	token, err := uc.tokenService.IssueSessionToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &UpdatePasswordOutput{
		Token: token,
	}, nil
}
