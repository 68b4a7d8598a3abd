// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/preplog/backend/internal/application/usecase/auth"
	domainerror "github.com/preplog/backend/internal/domain/error"
	"github.com/preplog/backend/internal/integration/entrypoint/dto"
	"github.com/preplog/backend/internal/integration/entrypoint/middleware"
)

// sessionCookieName is the cookie carrying the bearer session token.
const sessionCookieName = "token"

// AuthController handles authentication endpoints.
type AuthController struct {
	registerUseCase       *auth.RegisterUserUseCase
	loginUseCase          *auth.LoginUserUseCase
	forgotPasswordUseCase *auth.ForgotPasswordUseCase
	resetPasswordUseCase  *auth.ResetPasswordUseCase
	updatePasswordUseCase *auth.UpdatePasswordUseCase
	logoutUseCase         *auth.LogoutUserUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	forgotPasswordUseCase *auth.ForgotPasswordUseCase,
	resetPasswordUseCase *auth.ResetPasswordUseCase,
	updatePasswordUseCase *auth.UpdatePasswordUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:       registerUseCase,
		loginUseCase:          loginUseCase,
		forgotPasswordUseCase: forgotPasswordUseCase,
		resetPasswordUseCase:  resetPasswordUseCase,
		updatePasswordUseCase: updatePasswordUseCase,
		logoutUseCase:         logoutUseCase,
	}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	c.attachSessionCookie(ctx, output.Token.Token, output.Token.ExpiresAt)
	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Token:     output.Token.Token,
		ExpiresAt: output.Token.ExpiresAt,
		User:      dto.ToUserResponse(output.User),
	})
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	c.attachSessionCookie(ctx, output.Token.Token, output.Token.ExpiresAt)
	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Token:     output.Token.Token,
		ExpiresAt: output.Token.ExpiresAt,
		User:      dto.ToUserResponse(output.User),
	})
}

// ForgotPassword handles POST /auth/forgot-password requests.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidEmail),
		})
		return
	}

	output, err := c.forgotPasswordUseCase.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{
		Email: req.Email,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: output.Message,
	})
}

// ResetPassword handles POST /auth/reset-password/:token requests.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.resetPasswordUseCase.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:           ctx.Param("token"),
		NewPassword:     req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	c.attachSessionCookie(ctx, output.Token.Token, output.Token.ExpiresAt)
	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Token:     output.Token.Token,
		ExpiresAt: output.Token.ExpiresAt,
		User:      dto.ToUserResponse(output.User),
	})
}

// UpdatePassword handles PUT /auth/password requests for authenticated users.
func (c *AuthController) UpdatePassword(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Authentication required",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.updatePasswordUseCase.Execute(ctx.Request.Context(), auth.UpdatePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	c.attachSessionCookie(ctx, output.Token.Token, output.Token.ExpiresAt)
	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Token:     output.Token.Token,
		ExpiresAt: output.Token.ExpiresAt,
	})
}

// Logout handles POST /auth/logout requests. Sessions are stateless, so the
// only action is expiring the client-held cookie.
func (c *AuthController) Logout(ctx *gin.Context) {
	output, _ := c.logoutUseCase.Execute(ctx.Request.Context())

	ctx.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: output.Message,
	})
}

// attachSessionCookie stores the session token as an HTTP-only cookie that
// expires together with the token.
func (c *AuthController) attachSessionCookie(ctx *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	ctx.SetCookie(sessionCookieName, token, maxAge, "/", "", false, true)
}

// handleAuthError handles authentication errors and returns appropriate HTTP responses.
func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		statusCode := c.getStatusCodeForAuthError(authErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func (c *AuthController) getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodePasswordMismatch,
		domainerror.ErrCodeInvalidResetToken:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeResetDelivery:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
