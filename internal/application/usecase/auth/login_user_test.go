package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/preplog/backend/internal/domain/entity"
	domainerror "github.com/preplog/backend/internal/domain/error"
)

func TestLoginUserUseCase_Execute(t *testing.T) {
	t.Run("logs in with correct credentials", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(entity.NewUser("alice@example.com", "Alice", "hashed:secret123"))
		uc := NewLoginUserUseCase(repo, &mockPasswordService{}, &mockSessionTokenService{})

		output, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "Alice@Example.com",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		if output.Token == nil || output.Token.Token == "" {
			t.Error("expected a session token")
		}
		if output.User.Email != "alice@example.com" {
			t.Errorf("user email = %q, want %q", output.User.Email, "alice@example.com")
		}
	})

	t.Run("unknown email and wrong password yield the identical error", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.add(entity.NewUser("alice@example.com", "Alice", "hashed:secret123"))
		uc := NewLoginUserUseCase(repo, &mockPasswordService{}, &mockSessionTokenService{})

		_, unknownErr := uc.Execute(context.Background(), LoginUserInput{
			Email: "nobody@example.com", Password: "secret123",
		})
		_, wrongErr := uc.Execute(context.Background(), LoginUserInput{
			Email: "alice@example.com", Password: "wrong-password",
		})

		assertAuthCode(t, unknownErr, domainerror.ErrCodeInvalidCredentials)
		assertAuthCode(t, wrongErr, domainerror.ErrCodeInvalidCredentials)

		if unknownErr.Error() != wrongErr.Error() {
			t.Errorf("error messages differ: %q vs %q", unknownErr.Error(), wrongErr.Error())
		}
		if !errors.Is(unknownErr, domainerror.ErrInvalidCredentials) ||
			!errors.Is(wrongErr, domainerror.ErrInvalidCredentials) {
			t.Error("both errors should wrap ErrInvalidCredentials")
		}
	})
}
