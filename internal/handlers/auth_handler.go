package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and the
// password-reset flow.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/signin", h.HandleSignin)
	authRoutes.Post("/reset/request", h.HandleRequestReset)
	authRoutes.Post("/reset/complete", h.HandleCompleteReset)
}

// HandleSignup handles new account creation.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var input services.SignupInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationResponse(c, err)
	}

	token, user, err := h.authService.Signup(input)
	if err != nil {
		log.Printf("Error signing up user: %v", err)
		return errorResponse(c, "Could not sign up", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// SigninRequest represents the request body for signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleSignin handles user signin and issues a JWT token.
func (h *AuthHandler) HandleSignin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signin request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	token, user, err := h.authService.Signin(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during signin for %s: %v", req.Email, err)
		return errorResponse(c, "Authentication failed", err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// ResetRequest represents the request body for a password-reset request.
type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleRequestReset starts the password-reset flow for an email.
func (h *AuthHandler) HandleRequestReset(c *fiber.Ctx) error {
	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	user, err := h.authService.RequestReset(req.Email)
	if err != nil {
		log.Printf("Error requesting password reset for %s: %v", req.Email, err)
		return errorResponse(c, "Could not request password reset", err)
	}

	return c.JSON(fiber.Map{
		"message": "Reset email sent",
		"user":    user,
	})
}

// CompleteResetRequest represents the request body completing a reset.
type CompleteResetRequest struct {
	ResetToken      string `json:"reset_token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// HandleCompleteReset finishes the password-reset flow.
func (h *AuthHandler) HandleCompleteReset(c *fiber.Ctx) error {
	var req CompleteResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	token, user, err := h.authService.CompleteReset(req.ResetToken, req.Password, req.ConfirmPassword)
	if err != nil {
		log.Printf("Error completing password reset: %v", err)
		return errorResponse(c, "Could not reset password", err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
