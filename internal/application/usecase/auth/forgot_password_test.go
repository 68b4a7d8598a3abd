package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/preplog/backend/internal/domain/entity"
	domainerror "github.com/preplog/backend/internal/domain/error"
	"github.com/preplog/backend/internal/integration/adapters"
)

const testBaseURL = "http://localhost:5173"

func TestForgotPasswordUseCase_Execute(t *testing.T) {
	fixedNow := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixedNow }

	t.Run("stores the token digest and mails the raw token", func(t *testing.T) {
		repo := newMockUserRepo()
		user := entity.NewUser("alice@example.com", "Alice", "hashed:secret123")
		repo.add(user)
		email := &mockEmailService{}
		resetService := adapters.NewResetTokenService(time.Hour, clock)
		uc := NewForgotPasswordUseCase(repo, resetService, email, testBaseURL)

		output, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "alice@example.com"})
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		if output.Message != "Email sent to alice@example.com" {
			t.Errorf("message = %q", output.Message)
		}

		if len(email.sent) != 1 {
			t.Fatalf("sent %d emails, want 1", len(email.sent))
		}
		sent := email.sent[0]
		if sent.UserEmail != "alice@example.com" || sent.UserName != "Alice" {
			t.Errorf("email addressed to %q (%q)", sent.UserEmail, sent.UserName)
		}
		if sent.ExpiresIn != "1 hour" {
			t.Errorf("ExpiresIn = %q, want %q", sent.ExpiresIn, "1 hour")
		}

		prefix := testBaseURL + "/password/reset/"
		if !strings.HasPrefix(sent.ResetURL, prefix) {
			t.Fatalf("reset URL %q missing prefix %q", sent.ResetURL, prefix)
		}
		rawToken := strings.TrimPrefix(sent.ResetURL, prefix)
		if len(rawToken) != 64 {
			t.Errorf("raw token length = %d, want 64", len(rawToken))
		}

		stored := repo.get(user.ID)
		if stored.ResetTokenHash == nil || stored.ResetTokenExpiresAt == nil {
			t.Fatal("reset fields were not persisted")
		}
		// The stored digest, not the raw token, is what the email's token
		// must hash to.
		if *stored.ResetTokenHash == rawToken {
			t.Error("raw token was persisted instead of its digest")
		}
		if got := resetService.HashResetToken(rawToken); got != *stored.ResetTokenHash {
			t.Errorf("digest of mailed token = %q, stored hash = %q", got, *stored.ResetTokenHash)
		}
		if !stored.ResetTokenExpiresAt.Equal(fixedNow.Add(time.Hour)) {
			t.Errorf("expiry = %v, want %v", stored.ResetTokenExpiresAt, fixedNow.Add(time.Hour))
		}
	})

	t.Run("discloses when no account holds the email", func(t *testing.T) {
		uc := NewForgotPasswordUseCase(newMockUserRepo(), adapters.NewResetTokenService(time.Hour, clock), &mockEmailService{}, testBaseURL)

		_, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "nobody@example.com"})
		assertAuthCode(t, err, domainerror.ErrCodeUserNotFound)
		if !errors.Is(err, domainerror.ErrUserNotFound) {
			t.Error("error should wrap ErrUserNotFound")
		}
	})

	t.Run("rolls back the stored token when delivery fails", func(t *testing.T) {
		repo := newMockUserRepo()
		user := entity.NewUser("alice@example.com", "Alice", "hashed:secret123")
		repo.add(user)
		email := &mockEmailService{sendErr: errors.New("provider unavailable")}
		uc := NewForgotPasswordUseCase(repo, adapters.NewResetTokenService(time.Hour, clock), email, testBaseURL)

		_, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "alice@example.com"})
		assertAuthCode(t, err, domainerror.ErrCodeResetDelivery)

		stored := repo.get(user.ID)
		if stored.ResetTokenHash != nil || stored.ResetTokenExpiresAt != nil {
			t.Error("reset fields should be cleared after delivery failure")
		}
	})

	t.Run("a second request overwrites the pending token", func(t *testing.T) {
		repo := newMockUserRepo()
		user := entity.NewUser("alice@example.com", "Alice", "hashed:secret123")
		repo.add(user)
		email := &mockEmailService{}
		uc := NewForgotPasswordUseCase(repo, adapters.NewResetTokenService(time.Hour, clock), email, testBaseURL)

		if _, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "alice@example.com"}); err != nil {
			t.Fatalf("first request failed: %v", err)
		}
		firstHash := *repo.get(user.ID).ResetTokenHash

		if _, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "alice@example.com"}); err != nil {
			t.Fatalf("second request failed: %v", err)
		}
		secondHash := *repo.get(user.ID).ResetTokenHash

		if firstHash == secondHash {
			t.Error("second request did not replace the stored digest")
		}
		if len(email.sent) != 2 {
			t.Errorf("sent %d emails, want 2", len(email.sent))
		}
	})
}
