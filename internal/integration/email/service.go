// Package email provides email sending functionality.
package email

import (
	"context"

	"github.com/preplog/backend/internal/application/adapter"
	domainerror "github.com/preplog/backend/internal/domain/error"
	"github.com/preplog/backend/internal/integration/email/templates"
)

// Service composes and sends domain emails. Sending is synchronous so a
// delivery failure reaches the caller while it can still undo dependent
// state.
type Service struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer) *Service {
	return &Service{
		sender:   sender,
		renderer: renderer,
	}
}

// SendPasswordResetEmail renders and sends a password reset email.
func (s *Service) SendPasswordResetEmail(ctx context.Context, input adapter.SendPasswordResetInput) error {
	html, text, err := s.renderer.Render("password_reset", templates.PasswordResetData{
		UserName:  input.UserName,
		ResetURL:  input.ResetURL,
		ExpiresIn: input.ExpiresIn,
	})
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render password reset email",
			err,
		)
	}

	_, err = s.sender.Send(ctx, adapter.SendEmailInput{
		To:      input.UserEmail,
		Name:    input.UserName,
		Subject: "PrepLog Password Recovery",
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return err
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
