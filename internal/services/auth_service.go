package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/mail"
	"storefront/internal/models"
	"storefront/internal/permissions"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, signin and the password-reset flow.
type AuthService struct {
	userRepo   repositories.UserRepository
	mailer     mail.Mailer
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	resetTTL   time.Duration // Validity window for reset tokens
	mailFrom   string
	appURL     string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, mailer mail.Mailer, jwtSecret, mailFrom, appURL string, resetTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
		resetTTL:   resetTTL,
		mailFrom:   mailFrom,
		appURL:     appURL,
	}
}

// SignupInput carries the fields a new account is created from.
type SignupInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Signup creates a user with the default USER role, hashes the password
// and issues a bearer token for the new account. Duplicate emails are
// not checked here; the store's uniqueness constraint surfaces them.
func (s *AuthService) Signup(input SignupInput) (string, *models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:        input.Name,
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Password:    string(hashedPassword),
		Permissions: []string{permissions.User},
	}
	if err := s.userRepo.Create(user); err != nil {
		return "", nil, fmt.Errorf("failed to sign up: %w", err)
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Signin authenticates an email/password pair and issues a bearer token.
// An unknown email is a NotFound; a wrong password is InvalidCredentials.
func (s *AuthService) Signin(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// RequestReset generates a random reset token valid for the configured
// window, persists it on the user and emails a reset link.
func (s *AuthService) RequestReset(email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	expiry := time.Now().Add(s.resetTTL)

	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	msg := mail.Message{
		From:    s.mailFrom,
		To:      user.Email,
		Subject: "Your Password Reset Token",
		HTML:    mail.ResetEmailHTML(s.appURL, token),
	}
	if err := s.mailer.Send(msg); err != nil {
		return nil, fmt.Errorf("failed to send reset email: %w", err)
	}

	return user, nil
}

// CompleteReset validates the submitted token and password pair, stores
// the new password hash, clears the reset state and issues a fresh
// bearer token.
func (s *AuthService) CompleteReset(token, password, confirm string) (string, *models.User, error) {
	if password != confirm {
		return "", nil, fmt.Errorf("%w: passwords do not match", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByResetToken(token)
	if err != nil {
		return "", nil, apperrors.ErrInvalidResetToken
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return "", nil, apperrors.ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashedPassword)
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	if err := s.userRepo.Update(user); err != nil {
		return "", nil, fmt.Errorf("failed to complete password reset: %w", err)
	}

	fresh, err := s.signToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return fresh, user, nil
}

func (s *AuthService) signToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
