// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// SendPasswordResetInput represents the input for a password reset email.
type SendPasswordResetInput struct {
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// EmailService defines the interface for composing and sending domain emails.
// Delivery is synchronous: a failure surfaces to the caller so it can roll
// back any state written in anticipation of the send.
type EmailService interface {
	// SendPasswordResetEmail renders and sends a password reset email.
	SendPasswordResetEmail(ctx context.Context, input SendPasswordResetInput) error
}
