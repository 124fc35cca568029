package repositories

import (
	"fmt"
	"sync"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
// Its Upsert is atomic under the mutex, matching the conditional-write
// semantics of the GORM implementation.
type MockCartRepository struct {
	rows map[string]models.CartItem // keyed by cart item ID
	mu   sync.Mutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		rows: make(map[string]models.CartItem),
	}
}

// GetByUser returns all cart lines for a user.
func (r *MockCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cart []models.CartItem
	for _, row := range r.rows {
		if row.UserID == userID {
			cart = append(cart, row)
		}
	}
	return cart, nil
}

// Upsert inserts or increments the (user, item) row atomically.
func (r *MockCartRepository) Upsert(userID, itemID string) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, row := range r.rows {
		if row.UserID == userID && row.ItemID == itemID {
			row.Quantity++
			r.rows[id] = row
			return &row, nil
		}
	}

	row := models.CartItem{
		ID:       uuid.New().String(),
		UserID:   userID,
		ItemID:   itemID,
		Quantity: 1,
	}
	r.rows[row.ID] = row
	return &row, nil
}

// DeleteForUser deletes a cart line scoped to its owner.
func (r *MockCartRepository) DeleteForUser(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok || row.UserID != userID {
		return fmt.Errorf("%w: cart item %s", apperrors.ErrNotFound, id)
	}
	delete(r.rows, id)
	return nil
}
