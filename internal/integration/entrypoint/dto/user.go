// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/preplog/backend/internal/domain/entity"
)

// UpdateProfileRequest represents the request body for a profile update.
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Email string `json:"email" binding:"required,email"`
}

// ToggleQuestionRequest represents the request body for toggling a question.
type ToggleQuestionRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
}

// ToggleQuestionResponse represents the response for toggling a question.
type ToggleQuestionResponse struct {
	Success bool   `json:"success"`
	Added   bool   `json:"added"`
	Message string `json:"message"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	CompletedQuestions []string  `json:"completed_questions"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	questions := user.CompletedQuestions
	if questions == nil {
		questions = []string{}
	}
	return UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		CompletedQuestions: questions,
		CreatedAt:          user.CreatedAt,
	}
}
