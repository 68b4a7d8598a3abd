package user

import (
	"context"
	"errors"
	"testing"

	"github.com/preplog/backend/internal/domain/entity"
	domainerror "github.com/preplog/backend/internal/domain/error"
)

func TestUpdateProfileUseCase_Execute(t *testing.T) {
	t.Run("updates name and email without touching credentials", func(t *testing.T) {
		repo := newMockUserRepo()
		account := entity.NewUser("alice@example.com", "Alice", "stored-hash")
		repo.add(account)
		uc := NewUpdateProfileUseCase(repo)

		output, err := uc.Execute(context.Background(), UpdateProfileInput{
			UserID: account.ID,
			Name:   "Alice Smith",
			Email:  "Alice.Smith@Example.com",
		})
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		if output.User.Name != "Alice Smith" {
			t.Errorf("name = %q, want %q", output.User.Name, "Alice Smith")
		}
		if output.User.Email != "alice.smith@example.com" {
			t.Errorf("email = %q, want normalized %q", output.User.Email, "alice.smith@example.com")
		}

		stored := repo.get(account.ID)
		if stored.PasswordHash != "stored-hash" {
			t.Error("profile update modified the password hash")
		}
	})

	t.Run("rejects an email held by another account", func(t *testing.T) {
		repo := newMockUserRepo()
		account := entity.NewUser("alice@example.com", "Alice", "hash")
		other := entity.NewUser("bob@example.com", "Bob", "hash")
		repo.add(account)
		repo.add(other)
		uc := NewUpdateProfileUseCase(repo)

		_, err := uc.Execute(context.Background(), UpdateProfileInput{
			UserID: account.ID,
			Name:   "Alice",
			Email:  "bob@example.com",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeEmailExists {
			t.Errorf("error = %v, want AuthError %s", err, domainerror.ErrCodeEmailExists)
		}
	})

	t.Run("keeping the current email is not a conflict", func(t *testing.T) {
		repo := newMockUserRepo()
		account := entity.NewUser("alice@example.com", "Alice", "hash")
		repo.add(account)
		uc := NewUpdateProfileUseCase(repo)

		output, err := uc.Execute(context.Background(), UpdateProfileInput{
			UserID: account.ID,
			Name:   "Alice Smith",
			Email:  "alice@example.com",
		})
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		if output.User.Name != "Alice Smith" {
			t.Errorf("name = %q, want %q", output.User.Name, "Alice Smith")
		}
	})

	t.Run("rejects an invalid email format", func(t *testing.T) {
		repo := newMockUserRepo()
		account := entity.NewUser("alice@example.com", "Alice", "hash")
		repo.add(account)
		uc := NewUpdateProfileUseCase(repo)

		_, err := uc.Execute(context.Background(), UpdateProfileInput{
			UserID: account.ID,
			Name:   "Alice",
			Email:  "not-an-email",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeInvalidEmail {
			t.Errorf("error = %v, want AuthError %s", err, domainerror.ErrCodeInvalidEmail)
		}
	})
}
