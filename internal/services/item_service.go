package services

import (
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/permissions"
	"storefront/internal/repositories"
)

// ItemService handles business logic related to items, including the
// ownership checks on mutation.
type ItemService struct {
	itemRepo repositories.ItemRepository
	userRepo repositories.UserRepository
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo repositories.ItemRepository, userRepo repositories.UserRepository) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		userRepo: userRepo,
	}
}

// GetAllItems retrieves all items.
func (s *ItemService) GetAllItems() ([]models.Item, error) {
	return s.itemRepo.GetAll()
}

// GetItemByID retrieves a single item by its ID.
func (s *ItemService) GetItemByID(id string) (*models.Item, error) {
	return s.itemRepo.GetByID(id)
}

// CreateItem creates an item owned by the caller.
func (s *ItemService) CreateItem(callerID string, item *models.Item) error {
	if callerID == "" {
		return apperrors.ErrUnauthorized
	}
	item.UserID = callerID
	return s.itemRepo.Create(item)
}

// ItemUpdate carries the updatable item fields. There is deliberately no
// ID field here: identifiers are immutable, so a client-supplied id can
// never reach the store.
type ItemUpdate struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Price       *int64  `json:"price" validate:"omitempty,gt=0"`
	Image       *string `json:"image" validate:"omitempty,url"`
}

// UpdateItem applies the given fields to an item the caller owns (or
// may administer).
func (s *ItemService) UpdateItem(callerID, id string, updates ItemUpdate) (*models.Item, error) {
	item, err := s.authorizeMutation(callerID, id)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		item.Title = *updates.Title
	}
	if updates.Description != nil {
		item.Description = *updates.Description
	}
	if updates.Price != nil {
		item.Price = *updates.Price
	}
	if updates.Image != nil {
		item.Image = *updates.Image
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem deletes an item the caller owns (or may administer).
func (s *ItemService) DeleteItem(callerID, id string) error {
	if _, err := s.authorizeMutation(callerID, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(id)
}

// authorizeMutation loads the item and verifies the caller is its owner
// or holds ADMIN.
func (s *ItemService) authorizeMutation(callerID, itemID string) (*models.Item, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	caller, err := s.userRepo.GetByID(callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller %s: %w", callerID, err)
	}
	if !permissions.CanModifyItem(caller.ID, caller.Permissions, item.UserID) {
		return nil, fmt.Errorf("%w: you don't own this item", apperrors.ErrForbidden)
	}
	return item, nil
}
