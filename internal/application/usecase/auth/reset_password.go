// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/preplog/backend/internal/application/adapter"
	"github.com/preplog/backend/internal/domain/entity"
	domainerror "github.com/preplog/backend/internal/domain/error"
)

// ResetPasswordInput represents the input for a password reset confirmation.
type ResetPasswordInput struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

// ResetPasswordOutput represents the output of a password reset confirmation.
type ResetPasswordOutput struct {
	Token *adapter.SessionToken
	User  *entity.User
}

// ResetPasswordUseCase handles the password reset confirmation. A wrong token
// and an expired token surface as the same error to avoid an oracle.
type ResetPasswordUseCase struct {
	userRepo          adapter.UserRepository
	passwordService   adapter.PasswordService
	resetTokenService adapter.ResetTokenService
	tokenService      adapter.SessionTokenService
}

// NewResetPasswordUseCase creates a new ResetPasswordUseCase instance.
func NewResetPasswordUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	resetTokenService adapter.ResetTokenService,
	tokenService adapter.SessionTokenService,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:          userRepo,
		passwordService:   passwordService,
		resetTokenService: resetTokenService,
		tokenService:      tokenService,
	}
}

// Execute performs the password reset confirmation.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordOutput, error) {
	// Checked before any I/O; it reveals nothing about the token.
	if input.NewPassword != input.ConfirmPassword {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodePasswordMismatch,
			"passwords do not match",
			domainerror.ErrPasswordMismatch,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.NewPassword); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	now := time.Now().UTC()

	// Single expiry-filtered lookup by digest realizes the invalid-or-expired
	// check against the store.
	tokenHash := uc.resetTokenService.HashResetToken(input.Token)
	user, err := uc.userRepo.FindByResetTokenHash(ctx, tokenHash, now)
	if err != nil {
		return nil, invalidResetTokenError()
	}

	// The codec re-checks digest and expiry independently so an account whose
	// stored expiry slipped past the store filter still fails closed.
	if user.ResetTokenHash == nil || user.ResetTokenExpiresAt == nil {
		return nil, invalidResetTokenError()
	}
	if err := uc.resetTokenService.VerifyResetToken(input.Token, *user.ResetTokenHash, *user.ResetTokenExpiresAt, now); err != nil {
		return nil, invalidResetTokenError()
	}

	passwordHash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Set the new password and consume the token in one update.
	user.PasswordHash = passwordHash
	user.ClearResetToken()
	user.UpdatedAt = now

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user password: %w", err)
	}

	token, err := uc.tokenService.IssueSessionToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &ResetPasswordOutput{
		Token: token,
		User:  user,
	}, nil
}

func invalidResetTokenError() *domainerror.AuthError {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidResetToken,
		"password reset token is invalid or has expired",
		domainerror.ErrInvalidResetToken,
	)
}
