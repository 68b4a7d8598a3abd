package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/preplog/backend/internal/application/adapter"
	"github.com/preplog/backend/internal/domain/entity"
	domainerror "github.com/preplog/backend/internal/domain/error"
)

// mockUserRepo is an in-memory UserRepository for use case tests.
type mockUserRepo struct {
	users map[uuid.UUID]*entity.User

	createErr error
	updateErr error
	findErr   error
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
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return domainerror.ErrEmailAlreadyExists
		}
	}
	m.users[user.ID] = cloneUser(user)
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, user := range m.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (m *mockUserRepo) FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, user := range m.users {
		if user.ResetTokenHash != nil && *user.ResetTokenHash == tokenHash &&
			user.ResetTokenExpiresAt != nil && user.ResetTokenExpiresAt.After(now) {
			return cloneUser(user), nil
		}
	}
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
	if m.findErr != nil {
		return false, m.findErr
	}
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

// mockPasswordService hashes with a reversible prefix so tests can seed
// stored hashes without running a real digest.
type mockPasswordService struct {
	hashErr error
}

func (m *mockPasswordService) HashPassword(password string) (string, error) {
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return "hashed:" + password, nil
}

func (m *mockPasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

func (m *mockPasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 6 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

// mockSessionTokenService issues predictable tokens.
type mockSessionTokenService struct {
	issueErr error
}

func (m *mockSessionTokenService) IssueSessionToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.SessionToken, error) {
	if m.issueErr != nil {
		return nil, m.issueErr
	}
	return &adapter.SessionToken{
		Token:     fmt.Sprintf("session-%s", userID),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}, nil
}

func (m *mockSessionTokenService) ValidateSessionToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

// mockEmailService captures password reset emails and can fail on demand.
type mockEmailService struct {
	sent    []adapter.SendPasswordResetInput
	sendErr error
}

func (m *mockEmailService) SendPasswordResetEmail(ctx context.Context, input adapter.SendPasswordResetInput) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, input)
	return nil
}
