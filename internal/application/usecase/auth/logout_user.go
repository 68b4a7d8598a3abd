// Package auth contains authentication-related use cases.
package auth

import (
	"context"
)

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout. Sessions are stateless, so there is
// no server-side registry to mutate; the caller discards the client-held
// token by expiring its cookie.
type LogoutUserUseCase struct{}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase() *LogoutUserUseCase {
	return &LogoutUserUseCase{}
}

// Execute performs the user logout.
func (uc *LogoutUserUseCase) Execute(_ context.Context) (*LogoutUserOutput, error) {
	return &LogoutUserOutput{
		Message: "Logged out",
	}, nil
}
