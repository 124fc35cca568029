package repositories

import "storefront/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetByUser returns the user's cart with each line's Item preloaded.
	GetByUser(userID string) ([]models.CartItem, error)
	// Upsert adds one unit of an item to a user's cart as a single
	// conditional write: it inserts a quantity-1 row, or increments the
	// existing row for the same (user, item) pair. Safe under concurrent
	// identical requests.
	Upsert(userID, itemID string) (*models.CartItem, error)
	// DeleteForUser removes a cart line only if it belongs to the user.
	DeleteForUser(id, userID string) error
}
