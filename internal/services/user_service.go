package services

import (
	"fmt"
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/permissions"
	"storefront/internal/repositories"
)

// UserService handles profile updates and permission administration.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetByID retrieves a user.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ProfileUpdate is the allow-list of self-editable fields. Roles are
// deliberately absent: permissions can only change through
// UpdatePermissions.
type ProfileUpdate struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// UpdateProfile applies the allow-listed fields to the caller's own record.
func (s *UserService) UpdateProfile(callerID string, updates ProfileUpdate) (*models.User, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(callerID)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		user.Name = *updates.Name
	}
	if updates.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*updates.Email))
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePermissions overwrites the target user's role set with exactly
// the submitted list. The caller must hold ADMIN or PERMISSIONUPDATE.
func (s *UserService) UpdatePermissions(callerID, targetID string, roles []string) (*models.User, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	caller, err := s.userRepo.GetByID(callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller %s: %w", callerID, err)
	}
	if !permissions.CanUpdatePermissions(caller.Permissions) {
		return nil, fmt.Errorf("%w: you may not change permissions", apperrors.ErrForbidden)
	}
	if !permissions.Valid(roles) {
		return nil, fmt.Errorf("%w: unknown permission in %v", apperrors.ErrValidation, roles)
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	target.Permissions = roles
	if err := s.userRepo.Update(target); err != nil {
		return nil, err
	}
	return target, nil
}
