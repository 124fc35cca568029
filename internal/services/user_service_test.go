package services_test

import (
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/permissions"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	_, err := service.UpdateProfile("", services.ProfileUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	user := &models.User{
		ID:          "user-1",
		Name:        "Old Name",
		Email:       "old@example.com",
		Permissions: []string{permissions.User},
	}
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("Update", user).Return(nil).Once()

	newName := "New Name"
	newEmail := "NEW@Example.com"
	got, err := service.UpdateProfile(user.ID, services.ProfileUpdate{
		Name:  &newName,
		Email: &newEmail,
	})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "new@example.com", got.Email)
	// The allow-list has no role field, so a profile update can never
	// touch permissions.
	assert.Equal(t, []string{permissions.User}, got.Permissions)
}

func TestUserService_UpdatePermissions(t *testing.T) {
	target := func() *models.User {
		return &models.User{ID: "target-1", Permissions: []string{permissions.User}}
	}

	t.Run("plain user is forbidden", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewUserService(mockRepo)

		caller := &models.User{ID: "caller-1", Permissions: []string{permissions.User}}
		mockRepo.On("GetByID", caller.ID).Return(caller, nil).Once()

		_, err := service.UpdatePermissions(caller.ID, "target-1", []string{permissions.Admin})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("admin replaces the set exactly", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewUserService(mockRepo)

		caller := &models.User{ID: "caller-1", Permissions: []string{permissions.User, permissions.Admin}}
		tgt := target()
		mockRepo.On("GetByID", caller.ID).Return(caller, nil).Once()
		mockRepo.On("GetByID", tgt.ID).Return(tgt, nil).Once()
		mockRepo.On("Update", tgt).Return(nil).Once()

		got, err := service.UpdatePermissions(caller.ID, tgt.ID, []string{permissions.PermissionUpdate})
		assert.NoError(t, err)
		// No merge with the previous set: USER is gone.
		assert.Equal(t, []string{permissions.PermissionUpdate}, got.Permissions)
		mockRepo.AssertExpectations(t)
	})

	t.Run("PERMISSIONUPDATE role is sufficient", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewUserService(mockRepo)

		caller := &models.User{ID: "caller-1", Permissions: []string{permissions.User, permissions.PermissionUpdate}}
		tgt := target()
		mockRepo.On("GetByID", caller.ID).Return(caller, nil).Once()
		mockRepo.On("GetByID", tgt.ID).Return(tgt, nil).Once()
		mockRepo.On("Update", tgt).Return(nil).Once()

		got, err := service.UpdatePermissions(caller.ID, tgt.ID, []string{permissions.User, permissions.Admin})
		assert.NoError(t, err)
		assert.Equal(t, []string{permissions.User, permissions.Admin}, got.Permissions)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown role name is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewUserService(mockRepo)

		caller := &models.User{ID: "caller-1", Permissions: []string{permissions.Admin}}
		mockRepo.On("GetByID", caller.ID).Return(caller, nil).Once()

		_, err := service.UpdatePermissions(caller.ID, "target-1", []string{"SUPERUSER"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})
}
