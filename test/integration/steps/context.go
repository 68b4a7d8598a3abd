// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authusecase "github.com/preplog/backend/internal/application/usecase/auth"
	userusecase "github.com/preplog/backend/internal/application/usecase/user"
	"github.com/preplog/backend/internal/infra/server/router"
	"github.com/preplog/backend/internal/integration/adapters"
	"github.com/preplog/backend/internal/integration/email"
	"github.com/preplog/backend/internal/integration/email/templates"
	"github.com/preplog/backend/internal/integration/entrypoint/controller"
	"github.com/preplog/backend/internal/integration/entrypoint/middleware"
	"github.com/preplog/backend/internal/integration/persistence"
	"github.com/preplog/backend/internal/integration/persistence/model"
	"github.com/preplog/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	testBaseURL   = "http://localhost:5173"
)

// resetURLPattern extracts the raw reset token from a captured email body.
var resetURLPattern = regexp.MustCompile(`/password/reset/([0-9a-f]{64})`)

var serverInit sync.Once
var testDB *mock.Db
var testMailbox = email.NewMockEmailSender()
var testServerPort int
var portInit sync.Once

type testContext struct {
	uri           string
	headers       map[string]string
	client        *http.Client
	response      *response
	db            *mock.Db
	mailbox       *email.MockEmailSender
	serverPort    int
	sessionToken  string
	resetToken    string
	currentUserID uuid.UUID
}

type response struct {
	status int
	body   any
}

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		mailbox:    testMailbox,
		serverPort: testServerPort,
		db: mock.NewDb(map[string]any{
			"users": &model.UserModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user has completed the question "([^"]*)"$`, test.theUserHasCompletedTheQuestion)
	ctx.Given(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedInAsWithPassword)

	// Password reset setup steps
	ctx.Given(`^a password reset was requested for "([^"]*)"$`, test.aPasswordResetWasRequestedFor)
	ctx.Given(`^the reset token for "([^"]*)" has expired$`, test.theResetTokenForHasExpired)
	ctx.Given(`^the email provider is down$`, test.theEmailProviderIsDown)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the user "([^"]*)" should have a pending reset$`, test.theUserShouldHaveAPendingReset)
	ctx.Then(`^the user "([^"]*)" should have no pending reset$`, test.theUserShouldHaveNoPendingReset)

	// Email assertion steps
	ctx.Then(`^an email should have been sent to "([^"]*)"$`, test.anEmailShouldHaveBeenSentTo)
	ctx.Then(`^no email should have been sent$`, test.noEmailShouldHaveBeenSent)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.sessionToken = ""
	t.resetToken = ""
	t.currentUserID = uuid.Nil
	t.response = nil

	t.mailbox.Reset()

	if t.db != nil {
		_ = t.db.ClearDB()
	}
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			userRepo := persistence.NewUserRepository(testDB.DbConn)

			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, 15*time.Minute)
			resetTokenService := adapters.NewResetTokenService(time.Hour, nil)

			renderer, err := templates.NewRenderer()
			if err != nil {
				panic(fmt.Sprintf("failed to load email templates: %v", err))
			}
			emailService := email.NewService(testMailbox, renderer)

			registerUseCase := authusecase.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
			loginUseCase := authusecase.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			forgotPasswordUseCase := authusecase.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, testBaseURL)
			resetPasswordUseCase := authusecase.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)
			updatePasswordUseCase := authusecase.NewUpdatePasswordUseCase(userRepo, passwordService, tokenService)
			logoutUseCase := authusecase.NewLogoutUserUseCase()

			getProfileUseCase := userusecase.NewGetProfileUseCase(userRepo)
			updateProfileUseCase := userusecase.NewUpdateProfileUseCase(userRepo)
			toggleQuestionUseCase := userusecase.NewToggleQuestionUseCase(userRepo)

			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})
			authController := controller.NewAuthController(
				registerUseCase,
				loginUseCase,
				forgotPasswordUseCase,
				resetPasswordUseCase,
				updatePasswordUseCase,
				logoutUseCase,
			)
			userController := controller.NewUserController(
				getProfileUseCase,
				updateProfileUseCase,
				toggleQuestionUseCase,
			)

			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(healthController, authController, userController, authMiddleware)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for the server to be ready.
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(emailAddr, password string) error {
	userID := uuid.New()
	t.currentUserID = userID

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:                 userID,
		Email:              strings.ToLower(emailAddr),
		Name:               "Test User",
		PasswordHash:       hashPassword(password),
		CompletedQuestions: []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) theUserHasCompletedTheQuestion(questionID string) error {
	var user model.UserModel
	if err := t.db.DbConn.Where("id = ?", t.currentUserID).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	user.CompletedQuestions = append(user.CompletedQuestions, questionID)
	return t.db.DbConn.Save(&user).Error
}

func (t *testContext) iAmLoggedInAsWithPassword(emailAddr, password string) error {
	payload := fmt.Sprintf(`{"email": %q, "password": %q}`, emailAddr, password)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %v", t.response.status, t.response.body)
	}
	if t.sessionToken == "" {
		return errors.New("login response did not contain a session token")
	}
	return nil
}

func (t *testContext) aPasswordResetWasRequestedFor(emailAddr string) error {
	payload := fmt.Sprintf(`{"email": %q}`, emailAddr)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/forgot-password", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("password reset request failed with status %d: %v", t.response.status, t.response.body)
	}

	if len(t.mailbox.SentEmails) == 0 {
		return errors.New("no reset email was captured")
	}
	last := t.mailbox.SentEmails[len(t.mailbox.SentEmails)-1]
	match := resetURLPattern.FindStringSubmatch(last.Text)
	if match == nil {
		return fmt.Errorf("reset email does not contain a reset URL: %q", last.Text)
	}
	t.resetToken = match[1]
	return nil
}

func (t *testContext) theResetTokenForHasExpired(emailAddr string) error {
	expired := time.Now().UTC().Add(-time.Minute)
	result := t.db.DbConn.Model(&model.UserModel{}).
		Where("email = ?", strings.ToLower(emailAddr)).
		Update("reset_token_expires_at", expired)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no user found with email %q", emailAddr)
	}
	return nil
}

func (t *testContext) theEmailProviderIsDown() error {
	t.mailbox.SetFailure(errors.New("connection refused"))
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{reset_token}}", t.resetToken)
	content = strings.ReplaceAll(content, "{{session_token}}", t.sessionToken)
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.sessionToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody

		// Capture the session token from successful auth responses.
		if resp.StatusCode < http.StatusBadRequest {
			if token, ok := responseBody["token"].(string); ok && token != "" {
				t.sessionToken = token
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

// getFieldValue resolves a dotted field path in a JSON object.
func getFieldValue(body map[string]any, field string) any {
	parts := strings.Split(field, ".")
	var current any = body
	for _, part := range parts {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = obj[part]
		if !ok {
			return nil
		}
	}
	return current
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
	if result.Error != nil {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) findUserByEmail(emailAddr string) (*model.UserModel, error) {
	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", strings.ToLower(emailAddr)).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return &user, nil
}

func (t *testContext) theUserShouldHaveAPendingReset(emailAddr string) error {
	user, err := t.findUserByEmail(emailAddr)
	if err != nil {
		return err
	}
	if user.ResetTokenHash == nil || user.ResetTokenExpiresAt == nil {
		return fmt.Errorf("user %q has no stored reset token", emailAddr)
	}
	return nil
}

func (t *testContext) theUserShouldHaveNoPendingReset(emailAddr string) error {
	user, err := t.findUserByEmail(emailAddr)
	if err != nil {
		return err
	}
	if user.ResetTokenHash != nil || user.ResetTokenExpiresAt != nil {
		return fmt.Errorf("user %q still has a stored reset token", emailAddr)
	}
	return nil
}

func (t *testContext) anEmailShouldHaveBeenSentTo(emailAddr string) error {
	for _, sent := range t.mailbox.SentEmails {
		if sent.To == emailAddr {
			return nil
		}
	}
	return fmt.Errorf("no email sent to %q (captured %d emails)", emailAddr, len(t.mailbox.SentEmails))
}

func (t *testContext) noEmailShouldHaveBeenSent() error {
	if len(t.mailbox.SentEmails) > 0 {
		return fmt.Errorf("expected no emails, captured %d", len(t.mailbox.SentEmails))
	}
	return nil
}
