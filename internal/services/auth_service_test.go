package services_test

import (
	"fmt"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/mail"
	"storefront/internal/models"
	"storefront/internal/permissions"
	"storefront/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockMailer records sent messages instead of delivering them.
type MockMailer struct {
	Sent []mail.Message
}

func (m *MockMailer) Send(msg mail.Message) error {
	m.Sent = append(m.Sent, msg)
	return nil
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo *MockUserRepository, mailer *MockMailer) *services.AuthService {
	return services.NewAuthService(repo, mailer, testJWTSecret, "support@example.com", "http://localhost:3000", time.Hour)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func parseUserID(t *testing.T, tokenString string) string {
	t.Helper()
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	id, _ := claims["user_id"].(string)
	return id
}

func TestAuthService_Signup(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	authService := newAuthService(mockRepo, mailer)

	var created *models.User
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
		created.ID = "user-123"
	}).Return(nil).Once()

	token, user, err := authService.Signup(services.SignupInput{
		Name:     "Test User",
		Email:    "  Test@Example.COM ",
		Password: "password123",
	})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Email is normalized to lower-case at creation.
	assert.Equal(t, "test@example.com", user.Email)
	// Password is hashed, never stored as plaintext.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	// Default role set.
	assert.Equal(t, []string{permissions.User}, user.Permissions)
	// Token decodes back to the created user's id.
	assert.Equal(t, created.ID, parseUserID(t, token))
}

func TestAuthService_Signin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	authService := newAuthService(mockRepo, mailer)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Successful signin
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, got, err := authService.Signin("Test@Example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.ID, parseUserID(t, token))
	mockRepo.AssertExpectations(t)

	// Wrong password on an existing email is InvalidCredentials, not a
	// reset-token error.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err = authService.Signin(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidResetToken)
	mockRepo.AssertExpectations(t)

	// Nonexistent email is NotFound.
	notFound := fmt.Errorf("%w: no user found for email ghost@example.com", apperrors.ErrNotFound)
	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, notFound).Once()
	_, _, err = authService.Signin("ghost@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RequestReset(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	authService := newAuthService(mockRepo, mailer)

	user := &models.User{
		ID:    "user-123",
		Email: "test@example.com",
	}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockRepo.On("Update", user).Return(nil).Once()

	got, err := authService.RequestReset(user.Email)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// 20 random bytes, hex-encoded.
	assert.NotNil(t, got.ResetToken)
	assert.Len(t, *got.ResetToken, 40)
	assert.NotNil(t, got.ResetTokenExpiry)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *got.ResetTokenExpiry, time.Minute)

	// The reset email embeds the token and goes to the account's address.
	assert.Len(t, mailer.Sent, 1)
	assert.Equal(t, user.Email, mailer.Sent[0].To)
	assert.Equal(t, "support@example.com", mailer.Sent[0].From)
	assert.True(t, strings.Contains(mailer.Sent[0].HTML, *got.ResetToken))

	// Unknown email is NotFound.
	notFound := fmt.Errorf("%w: no user found for email ghost@example.com", apperrors.ErrNotFound)
	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, notFound).Once()
	_, err = authService.RequestReset("ghost@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_CompleteReset(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	authService := newAuthService(mockRepo, mailer)

	// Password confirmation mismatch never touches the store.
	_, _, err := authService.CompleteReset("sometoken", "newpassword1", "newpassword2")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockRepo.AssertNotCalled(t, "GetByResetToken", mock.Anything)

	// A token older than the window is rejected even though it matches.
	expired := time.Now().Add(-2 * time.Hour)
	staleToken := "stale-token"
	staleUser := &models.User{
		ID:               "user-123",
		ResetToken:       &staleToken,
		ResetTokenExpiry: &expired,
	}
	mockRepo.On("GetByResetToken", staleToken).Return(staleUser, nil).Once()
	_, _, err = authService.CompleteReset(staleToken, "newpassword1", "newpassword1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
	mockRepo.AssertExpectations(t)

	// An unknown token is the same error kind.
	mockRepo.On("GetByResetToken", "ghost-token").Return(nil, fmt.Errorf("%w: no user for reset token", apperrors.ErrNotFound)).Once()
	_, _, err = authService.CompleteReset("ghost-token", "newpassword1", "newpassword1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
	mockRepo.AssertExpectations(t)

	// Successful reset stores a new hash, clears the reset state and
	// issues a fresh token.
	validUntil := time.Now().Add(30 * time.Minute)
	liveToken := "live-token"
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	liveUser := &models.User{
		ID:               "user-456",
		Email:            "reset@example.com",
		Password:         string(oldHash),
		ResetToken:       &liveToken,
		ResetTokenExpiry: &validUntil,
	}
	mockRepo.On("GetByResetToken", liveToken).Return(liveUser, nil).Once()
	mockRepo.On("Update", liveUser).Return(nil).Once()

	fresh, got, err := authService.CompleteReset(liveToken, "newpassword1", "newpassword1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("newpassword1")))
	assert.Nil(t, got.ResetToken)
	assert.Nil(t, got.ResetTokenExpiry)
	assert.Equal(t, "user-456", parseUserID(t, fresh))
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	authService := newAuthService(mockRepo, mailer)

	// Valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
