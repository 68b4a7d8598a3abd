package auth

import (
	"context"
	"testing"

	"github.com/preplog/backend/internal/domain/entity"
	domainerror "github.com/preplog/backend/internal/domain/error"
)

func TestUpdatePasswordUseCase_Execute(t *testing.T) {
	t.Run("changes the password and issues a fresh token", func(t *testing.T) {
		repo := newMockUserRepo()
		user := entity.NewUser("alice@example.com", "Alice", "hashed:old-secret")
		repo.add(user)
		uc := NewUpdatePasswordUseCase(repo, &mockPasswordService{}, &mockSessionTokenService{})

		output, err := uc.Execute(context.Background(), UpdatePasswordInput{
			UserID:      user.ID,
			OldPassword: "old-secret",
			NewPassword: "new-secret",
		})
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		if output.Token == nil || output.Token.Token == "" {
			t.Error("expected a fresh session token")
		}

		stored := repo.get(user.ID)
		if stored.PasswordHash != "hashed:new-secret" {
			t.Errorf("password hash = %q, want %q", stored.PasswordHash, "hashed:new-secret")
		}
	})

	t.Run("rejects an incorrect old password", func(t *testing.T) {
		repo := newMockUserRepo()
		user := entity.NewUser("alice@example.com", "Alice", "hashed:old-secret")
		repo.add(user)
		uc := NewUpdatePasswordUseCase(repo, &mockPasswordService{}, &mockSessionTokenService{})

		_, err := uc.Execute(context.Background(), UpdatePasswordInput{
			UserID:      user.ID,
			OldPassword: "wrong",
			NewPassword: "new-secret",
		})
		assertAuthCode(t, err, domainerror.ErrCodeInvalidCredentials)

		if repo.get(user.ID).PasswordHash != "hashed:old-secret" {
			t.Error("password changed despite a wrong old password")
		}
	})

	t.Run("rejects a weak replacement password", func(t *testing.T) {
		repo := newMockUserRepo()
		user := entity.NewUser("alice@example.com", "Alice", "hashed:old-secret")
		repo.add(user)
		uc := NewUpdatePasswordUseCase(repo, &mockPasswordService{}, &mockSessionTokenService{})

		_, err := uc.Execute(context.Background(), UpdatePasswordInput{
			UserID:      user.ID,
			OldPassword: "old-secret",
			NewPassword: "short",
		})
		assertAuthCode(t, err, domainerror.ErrCodeWeakPassword)
	})
}
