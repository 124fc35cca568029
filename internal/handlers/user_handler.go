package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles and permissions.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleGetMe)
	userRoutes.Patch("/me", h.HandleUpdateMe)
	userRoutes.Put("/:id/permissions", h.HandleUpdatePermissions)
}

// HandleGetMe returns the caller's own user record.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	user, err := h.service.GetByID(callerID(c))
	if err != nil {
		log.Printf("Error loading current user: %v", err)
		return errorResponse(c, "Could not load user", err)
	}
	return c.JSON(user)
}

// HandleUpdateMe applies allow-listed profile fields to the caller's record.
func (h *UserHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var updates services.ProfileUpdate
	if err := c.BodyParser(&updates); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(updates); err != nil {
		return validationResponse(c, err)
	}

	user, err := h.service.UpdateProfile(callerID(c), updates)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return errorResponse(c, "Could not update profile", err)
	}

	return c.JSON(user)
}

// UpdatePermissionsRequest carries the replacement role list for a user.
type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,dive,oneof=USER ADMIN PERMISSIONUPDATE"`
}

// HandleUpdatePermissions replaces the target user's role set.
func (h *UserHandler) HandleUpdatePermissions(c *fiber.Ctx) error {
	targetID := c.Params("id")

	var req UpdatePermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing permissions update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	user, err := h.service.UpdatePermissions(callerID(c), targetID, req.Permissions)
	if err != nil {
		log.Printf("Error updating permissions for user %s: %v", targetID, err)
		return errorResponse(c, "Could not update permissions", err)
	}

	return c.JSON(fiber.Map{
		"user":        user,
		"permissions": user.Permissions,
	})
}
