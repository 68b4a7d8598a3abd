// Package user contains profile-related use cases.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/preplog/backend/internal/application/adapter"
)

// ToggleQuestionInput represents the input for toggling a completed question.
type ToggleQuestionInput struct {
	UserID     uuid.UUID
	QuestionID string
}

// ToggleQuestionOutput represents the output of toggling a completed question.
type ToggleQuestionOutput struct {
	Added   bool
	Message string
}

// ToggleQuestionUseCase marks a practice question as done or undone. Toggling
// the same question twice returns the completed set to its original state.
type ToggleQuestionUseCase struct {
	userRepo adapter.UserRepository
}

// NewToggleQuestionUseCase creates a new ToggleQuestionUseCase instance.
func NewToggleQuestionUseCase(userRepo adapter.UserRepository) *ToggleQuestionUseCase {
	return &ToggleQuestionUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the toggle.
func (uc *ToggleQuestionUseCase) Execute(ctx context.Context, input ToggleQuestionInput) (*ToggleQuestionOutput, error) {
	added, err := uc.userRepo.ToggleCompletedQuestion(ctx, input.UserID, input.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle question: %w", err)
	}

	message := "You have done the question"
	if !added {
		message = "You have undone the question"
	}

	return &ToggleQuestionOutput{
		Added:   added,
		Message: message,
	}, nil
}
