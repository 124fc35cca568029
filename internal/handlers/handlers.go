package handlers

import (
	"errors"
	"fmt"

	"storefront/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// callerID returns the authenticated caller's user id from the request
// locals, or "" when the request is unauthenticated.
func callerID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// statusFromError maps a service error kind to an HTTP status.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidResetToken):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPaymentFailed):
		return fiber.StatusPaymentRequired
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse writes the standard error envelope for a failed operation.
func errorResponse(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// validationResponse writes a field-by-field validation failure envelope.
func validationResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
