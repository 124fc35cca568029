// Package apperrors defines the error kinds surfaced by the service
// layer. Handlers translate them to HTTP statuses with errors.Is;
// services wrap them with fmt.Errorf("%w: ...") to add context.
package apperrors

import "errors"

var (
	// ErrUnauthorized means no session identity was present on the request.
	ErrUnauthorized = errors.New("you must be signed in")
	// ErrForbidden means a session was present but the caller lacks
	// ownership of the resource or the required role.
	ErrForbidden = errors.New("insufficient permissions")
	ErrNotFound  = errors.New("not found")
	// ErrValidation covers bad input the service layer rejects itself,
	// e.g. a password confirmation mismatch.
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
	ErrPaymentFailed      = errors.New("payment failed")
)
