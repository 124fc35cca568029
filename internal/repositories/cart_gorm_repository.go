package repositories

import (
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser returns all cart lines for a user with items preloaded.
func (r *GORMCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	var cart []models.CartItem
	if err := r.db.Preload("Item").Find(&cart, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// Upsert inserts a quantity-1 row or increments the existing one. The
// ON CONFLICT clause targets the (user_id, item_id) unique index, so
// concurrent adds for the same pair can never produce two rows.
func (r *GORMCartRepository) Upsert(userID, itemID string) (*models.CartItem, error) {
	row := models.CartItem{
		ID:       uuid.New().String(),
		UserID:   userID,
		ItemID:   itemID,
		Quantity: 1,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", 1),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	// Re-read: on the conflict path the returned struct does not carry
	// the existing row's id or incremented quantity.
	var current models.CartItem
	if err := r.db.Preload("Item").First(&current, "user_id = ? AND item_id = ?", userID, itemID).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart item after upsert: %w", err)
	}
	return &current, nil
}

// DeleteForUser deletes a cart line scoped to its owner. A guessed id
// belonging to another user matches zero rows.
func (r *GORMCartRepository) DeleteForUser(id, userID string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: cart item %s", apperrors.ErrNotFound, id)
	}
	return nil
}
