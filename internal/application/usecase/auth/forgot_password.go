// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/preplog/backend/internal/application/adapter"
	"github.com/preplog/backend/internal/domain/entity"
	domainerror "github.com/preplog/backend/internal/domain/error"
)

// ForgotPasswordInput represents the input for a password reset request.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordOutput represents the output of a password reset request.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase handles the password reset request flow: it stores a
// reset token digest on the user and mails the raw token. Unlike login, this
// flow discloses whether the account exists.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.ResetTokenService
	emailService      adapter.EmailService
	appBaseURL        string
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.ResetTokenService,
	emailService adapter.EmailService,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailService:      emailService,
		appBaseURL:        appBaseURL,
	}
}

// Execute performs the password reset request.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	user, err := uc.userRepo.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found with this email",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Generate the reset token. Only the digest is persisted; the raw token
	// exists solely in the outbound email.
	rawToken, tokenHash, expiresAt, err := uc.resetTokenService.GenerateResetToken()
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeTokenEncoding,
			"failed to generate reset token",
			domainerror.ErrTokenEncoding,
		)
	}

	// Persist the pending reset, overwriting any earlier one.
	user.SetResetToken(tokenHash, expiresAt)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", uc.appBaseURL, rawToken)

	err = uc.emailService.SendPasswordResetEmail(ctx, adapter.SendPasswordResetInput{
		UserEmail: user.Email,
		UserName:  user.Name,
		ResetURL:  resetURL,
		ExpiresIn: "1 hour",
	})
	if err != nil {
		// Compensating write: leave the account as if no reset was requested,
		// then surface the delivery failure.
		user.ClearResetToken()
		if rollbackErr := uc.userRepo.Update(ctx, user); rollbackErr != nil {
			slog.Error("Failed to roll back reset token after delivery failure",
				"error", rollbackErr,
				"userID", user.ID,
			)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeResetDelivery,
			"failed to deliver password reset email",
			err,
		)
	}

	slog.Info("Password reset email sent", "userID", user.ID, "email", user.Email)

	return &ForgotPasswordOutput{
		Message: fmt.Sprintf("Email sent to %s", user.Email),
	}, nil
}
