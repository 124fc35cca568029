package repositories

import "storefront/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreateAndClearCart persists the order with its item snapshots and
	// deletes the given cart rows in a single transaction, so a failed
	// order write never loses the cart and a recorded order never leaves
	// the cart behind.
	CreateAndClearCart(order *models.Order, cartItemIDs []string) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
}
