package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/preplog/backend/internal/domain/entity"
	domainerror "github.com/preplog/backend/internal/domain/error"
)

// mockUserRepo is an in-memory UserRepository for use case tests.
type mockUserRepo struct {
	users map[uuid.UUID]*entity.User

	updateErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepo) add(user *entity.User) {
	m.users[user.ID] = cloneUser(user)
}

func (m *mockUserRepo) get(id uuid.UUID) *entity.User {
	return m.users[id]
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	m.users[user.ID] = cloneUser(user)
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (m *mockUserRepo) FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.users[user.ID]; !ok {
		return domainerror.ErrUserNotFound
	}
	m.users[user.ID] = cloneUser(user)
	return nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) ToggleCompletedQuestion(ctx context.Context, userID uuid.UUID, questionID string) (bool, error) {
	user, ok := m.users[userID]
	if !ok {
		return false, domainerror.ErrUserNotFound
	}
	for i, id := range user.CompletedQuestions {
		if id == questionID {
			user.CompletedQuestions = append(user.CompletedQuestions[:i], user.CompletedQuestions[i+1:]...)
			return false, nil
		}
	}
	user.CompletedQuestions = append(user.CompletedQuestions, questionID)
	return true, nil
}

func cloneUser(user *entity.User) *entity.User {
	clone := *user
	if user.ResetTokenHash != nil {
		hash := *user.ResetTokenHash
		clone.ResetTokenHash = &hash
	}
	if user.ResetTokenExpiresAt != nil {
		expiry := *user.ResetTokenExpiresAt
		clone.ResetTokenExpiresAt = &expiry
	}
	clone.CompletedQuestions = append([]string(nil), user.CompletedQuestions...)
	return &clone
}
