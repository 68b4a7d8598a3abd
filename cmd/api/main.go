// Package main is the entry point for the PrepLog API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/preplog/backend/config"
	"github.com/preplog/backend/internal/application/usecase/auth"
	"github.com/preplog/backend/internal/application/usecase/user"
	"github.com/preplog/backend/internal/infra/db"
	"github.com/preplog/backend/internal/infra/server/router"
	"github.com/preplog/backend/internal/integration/adapters"
	"github.com/preplog/backend/internal/integration/email"
	"github.com/preplog/backend/internal/integration/email/templates"
	"github.com/preplog/backend/internal/integration/entrypoint/controller"
	"github.com/preplog/backend/internal/integration/entrypoint/middleware"
	"github.com/preplog/backend/internal/integration/persistence"
	"github.com/preplog/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting PrepLog API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	var database *db.Database
	var dbHealthChecker func() bool

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
		dbHealthChecker = func() bool { return false }
	} else {
		if err := database.AutoMigrate(&model.UserModel{}); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		dbHealthChecker = database.HealthCheck
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Create health controller with database health checker
	healthController := controller.NewHealthController(dbHealthChecker)

	// Create controllers and middleware (only if database is available)
	var authController *controller.AuthController
	var userController *controller.UserController
	var authMiddleware *middleware.AuthMiddleware

	if database != nil {
		// Create repositories
		userRepo := persistence.NewUserRepository(database.DB())

		// Create adapters/services
		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(cfg.Session.Secret, cfg.Session.TokenExpiry)
		resetTokenService := adapters.NewResetTokenService(cfg.Reset.TokenExpiry, nil)

		renderer, err := templates.NewRenderer()
		if err != nil {
			slog.Error("Failed to load email templates", "error", err)
			os.Exit(1)
		}
		resendClient := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		emailService := email.NewService(resendClient, renderer)

		// Create auth use cases
		registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
		forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
		resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)
		updatePasswordUseCase := auth.NewUpdatePasswordUseCase(userRepo, passwordService, tokenService)
		logoutUseCase := auth.NewLogoutUserUseCase()

		// Create user use cases
		getProfileUseCase := user.NewGetProfileUseCase(userRepo)
		updateProfileUseCase := user.NewUpdateProfileUseCase(userRepo)
		toggleQuestionUseCase := user.NewToggleQuestionUseCase(userRepo)

		authController = controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			forgotPasswordUseCase,
			resetPasswordUseCase,
			updatePasswordUseCase,
			logoutUseCase,
		)

		userController = controller.NewUserController(
			getProfileUseCase,
			updateProfileUseCase,
			toggleQuestionUseCase,
		)

		authMiddleware = middleware.NewAuthMiddleware(tokenService)

		slog.Info("Auth system initialized successfully")
	} else {
		slog.Warn("Auth system not initialized due to missing database connection")
	}

	// Setup router
	r := router.NewRouter(healthController, authController, userController, authMiddleware)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
