// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/preplog/backend/internal/domain/entity"
)

// UserModel represents the users table in the database.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`

	// Nullable pair: both set while a reset is pending, both cleared otherwise.
	ResetTokenHash      *string    `gorm:"type:varchar(64);index"`
	ResetTokenExpiresAt *time.Time `gorm:"type:timestamptz"`

	CompletedQuestions pq.StringArray `gorm:"type:text[]"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	questions := make([]string, len(m.CompletedQuestions))
	copy(questions, m.CompletedQuestions)

	return &entity.User{
		ID:                  m.ID,
		Email:               m.Email,
		Name:                m.Name,
		PasswordHash:        m.PasswordHash,
		ResetTokenHash:      m.ResetTokenHash,
		ResetTokenExpiresAt: m.ResetTokenExpiresAt,
		CompletedQuestions:  questions,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	questions := make(pq.StringArray, len(user.CompletedQuestions))
	copy(questions, user.CompletedQuestions)

	return &UserModel{
		ID:                  user.ID,
		Email:               user.Email,
		Name:                user.Name,
		PasswordHash:        user.PasswordHash,
		ResetTokenHash:      user.ResetTokenHash,
		ResetTokenExpiresAt: user.ResetTokenExpiresAt,
		CompletedQuestions:  questions,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
}
