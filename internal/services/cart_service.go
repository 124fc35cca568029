package services

import (
	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles business logic for the shopping cart.
type CartService struct {
	cartRepo repositories.CartRepository
	itemRepo repositories.ItemRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, itemRepo repositories.ItemRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

// GetCart returns the caller's cart lines.
func (s *CartService) GetCart(callerID string) ([]models.CartItem, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return s.cartRepo.GetByUser(callerID)
}

// AddToCart adds one unit of an item to the caller's cart. The write is
// a single atomic upsert keyed on (user, item), so two concurrent adds
// for the same pair increment one row instead of creating two.
func (s *CartService) AddToCart(callerID, itemID string) (*models.CartItem, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	// The item must exist before it goes in a cart.
	if _, err := s.itemRepo.GetByID(itemID); err != nil {
		return nil, err
	}
	return s.cartRepo.Upsert(callerID, itemID)
}

// RemoveFromCart deletes a cart line, scoped to the caller: a guessed
// id belonging to another user's cart is a NotFound.
func (s *CartService) RemoveFromCart(callerID, cartItemID string) error {
	if callerID == "" {
		return apperrors.ErrUnauthorized
	}
	return s.cartRepo.DeleteForUser(cartItemID, callerID)
}
